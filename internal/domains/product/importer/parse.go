package importer

import (
	"io"
	"path/filepath"
	"strings"

	"catalog-backend/internal/domains/product/model"

	"github.com/rs/zerolog/log"
)

// Format is a supported import/export payload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// DetectFormat resolves a payload format from a file name's extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "csv", "txt":
		return FormatCSV, nil
	case "xlsx", "xlsm":
		return FormatXLSX, nil
	case "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", model.ErrUnsupportedFormat
	}
}

// ParseFormat resolves a format name supplied explicitly by a caller.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatCSV, FormatXLSX, FormatXML, FormatJSON:
		return Format(strings.ToLower(strings.TrimSpace(name))), nil
	default:
		return "", model.ErrUnsupportedFormat
	}
}

// Parse reads a payload in the given format and returns the parsed rows plus
// the count of rows skipped for carrying no product name. All four formats
// converge on the same normalize-then-parse pipeline; unrecognized columns
// are logged once per file and otherwise ignored.
func Parse(format Format, r io.Reader) ([]ParsedRow, int, error) {
	switch format {
	case FormatCSV, FormatXLSX:
		var headers []string
		var rows [][]string
		var err error
		if format == FormatCSV {
			headers, rows, err = ReadCSV(r)
		} else {
			headers, rows, err = ReadXLSX(r)
		}
		if err != nil {
			return nil, 0, err
		}

		fields, unknown := NormalizeHeaders(headers)
		if len(unknown) > 0 {
			log.Warn().Strs("columns", unknown).Msg("Ignoring unrecognized import columns")
		}

		parsed, skipped := ParseTable(fields, rows)
		return parsed, skipped, nil

	case FormatXML, FormatJSON:
		var records [][]Pair
		var err error
		if format == FormatXML {
			records, err = ReadXML(r)
		} else {
			records, err = ReadJSON(r)
		}
		if err != nil {
			return nil, 0, err
		}

		parsed, skipped := ParsePairs(records)
		return parsed, skipped, nil

	default:
		return nil, 0, model.ErrUnsupportedFormat
	}
}
