package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"catalog-backend/internal/domains/product/model"
)

// ReadCSV reads a comma-separated payload into a header row and data rows.
// Ragged rows are tolerated (short rows parse as if the missing cells were
// empty) and a UTF-8 BOM on the first header is stripped.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil, model.ErrEmptyFile
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	return headers, records[1:], nil
}
