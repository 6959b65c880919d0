package importer

import (
	"encoding/xml"
	"fmt"
	"io"

	"catalog-backend/internal/domains/product/model"
)

// Each direct child of the document root is one product record; the child
// element names act as column headers. Neither the root nor the record
// element names matter, so exports from other systems parse without a
// schema.
type xmlDocument struct {
	Records []xmlRecord `xml:",any"`
}

type xmlRecord struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"` // CDATA sections included
}

// ReadXML reads an XML payload into header/value records.
func ReadXML(r io.Reader) ([][]Pair, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}
	if len(doc.Records) == 0 {
		return nil, model.ErrEmptyFile
	}

	records := make([][]Pair, 0, len(doc.Records))
	for _, record := range doc.Records {
		pairs := make([]Pair, 0, len(record.Fields))
		for _, field := range record.Fields {
			pairs = append(pairs, Pair{Header: field.XMLName.Local, Value: field.Value})
		}
		records = append(records, pairs)
	}

	return records, nil
}
