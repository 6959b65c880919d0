package importer

import (
	"fmt"
	"io"

	"catalog-backend/internal/domains/product/model"
	"catalog-backend/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first worksheet of an Excel workbook into a header row
// and data rows. Other worksheets are ignored.
func ReadXLSX(r io.Reader) ([]string, [][]string, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if closeErr := workbook.Close(); closeErr != nil {
			logger.Error("ReadXLSX: failed to close workbook", closeErr)
		}
	}()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, model.ErrEmptyFile
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, model.ErrEmptyFile
	}

	return rows[0], rows[1:], nil
}
