package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/repository"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	products repository.ProductRepository
}

func NewExportService(products repository.ProductRepository) ExportService {
	return &exportService{products: products}
}

func (s *exportService) Columns() []model.ExportColumn {
	return model.ExportColumns()
}

// Export renders the full catalog in the requested format, restricted to the
// selected columns (defaults when none are named). Column headers are chosen
// so a re-import of the file parses back to the same fields.
func (s *exportService) Export(ctx context.Context, format importer.Format, fields []string) (*ExportPayload, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	columns := model.SelectExportColumns(fields)
	if len(columns) == 0 {
		columns = model.DefaultExportColumns()
	}

	var data []byte
	var contentType string

	switch format {
	case importer.FormatCSV:
		data, err = writeCSVExport(products, columns)
		contentType = "text/csv"
	case importer.FormatXLSX:
		data, err = writeXLSXExport(products, columns)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case importer.FormatXML:
		data, err = writeXMLExport(products, columns)
		contentType = "application/xml"
	case importer.FormatJSON:
		data, err = writeJSONExport(products, columns)
		contentType = "application/json"
	default:
		return nil, model.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("format", string(format)).
		Int("products", len(products)).
		Int("columns", len(columns)).
		Msg("Export rendered")

	return &ExportPayload{
		Data:        data,
		ContentType: contentType,
		FileName:    fmt.Sprintf("products_%s.%s", time.Now().Format("20060102_150405"), format),
	}, nil
}

func writeCSVExport(products []model.Product, columns []model.ExportColumn) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(columns))
	for i, column := range columns {
		headers[i] = column.Title
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(columns))
	for i := range products {
		for j, column := range columns {
			row[j] = importer.FieldValue(&products[i], column.Field)
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSXExport(products []model.Product, columns []model.ExportColumn) ([]byte, error) {
	const sheet = "Products"

	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := workbook.SetSheetName(workbook.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build header style: %w", err)
	}

	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := workbook.SetCellValue(sheet, cell, column.Title); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to address header range: %w", err)
	}
	if err := workbook.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i := range products {
		for j, column := range columns {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := workbook.SetCellValue(sheet, cell, importer.FieldValue(&products[i], column.Field)); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// freeTextFields are wrapped in CDATA so HTML descriptions survive the XML
// round trip unescaped.
var freeTextFields = map[string]bool{
	importer.FieldDescription: true,
	importer.FieldFeatures:    true,
	importer.FieldNotes:       true,
}

type cdataCell struct {
	Value string `xml:",cdata"`
}

func writeXMLExport(products []model.Product, columns []model.ExportColumn) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "Products"}}
	if err := encoder.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("failed to write xml root: %w", err)
	}

	record := xml.StartElement{Name: xml.Name{Local: "Product"}}
	for i := range products {
		if err := encoder.EncodeToken(record); err != nil {
			return nil, fmt.Errorf("failed to write xml record: %w", err)
		}

		for _, column := range columns {
			value := importer.FieldValue(&products[i], column.Field)
			element := xml.StartElement{Name: xml.Name{Local: column.JSON}}

			var err error
			if freeTextFields[column.Field] && value != "" {
				err = encoder.EncodeElement(cdataCell{Value: value}, element)
			} else {
				err = encoder.EncodeElement(value, element)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to write xml field %s: %w", column.Field, err)
			}
		}

		if err := encoder.EncodeToken(record.End()); err != nil {
			return nil, fmt.Errorf("failed to close xml record: %w", err)
		}
	}

	if err := encoder.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("failed to close xml root: %w", err)
	}
	if err := encoder.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush xml: %w", err)
	}

	return buf.Bytes(), nil
}

func writeJSONExport(products []model.Product, columns []model.ExportColumn) ([]byte, error) {
	records := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		record := make(map[string]interface{}, len(columns))
		for _, column := range columns {
			switch column.Field {
			case importer.FieldID:
				record[column.JSON] = products[i].ID
			case importer.FieldArchived:
				record[column.JSON] = products[i].Archived
			default:
				record[column.JSON] = importer.FieldValue(&products[i], column.Field)
			}
		}
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render json export: %w", err)
	}
	return data, nil
}
