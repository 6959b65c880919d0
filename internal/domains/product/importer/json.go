package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"catalog-backend/internal/domains/product/model"
)

// ReadJSON reads a JSON payload into header/value records. The expected shape
// is an array of flat objects; a wrapper object is tolerated by taking its
// first array-valued property. Property names act as column headers.
func ReadJSON(r io.Reader) ([][]Pair, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var payload interface{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	items, err := jsonRecords(payload)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrEmptyFile
	}

	records := make([][]Pair, 0, len(items))
	for i, item := range items {
		object, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("json record %d is not an object", i+1)
		}

		pairs := make([]Pair, 0, len(object))
		for key, value := range object {
			pairs = append(pairs, Pair{Header: key, Value: jsonValueString(value)})
		}
		records = append(records, pairs)
	}

	return records, nil
}

func jsonRecords(payload interface{}) ([]interface{}, error) {
	switch typed := payload.(type) {
	case []interface{}:
		return typed, nil
	case map[string]interface{}:
		for _, value := range typed {
			if items, ok := value.([]interface{}); ok {
				return items, nil
			}
		}
	}
	return nil, fmt.Errorf("json payload is not an array of records")
}

// jsonValueString renders a scalar cell the way the tabular formats carry it.
// Nested arrays/objects are not meaningful as cells and render as raw JSON,
// which the row parser then ignores or fails to parse field by field.
func jsonValueString(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return "false"
	case json.Number:
		return typed.String()
	default:
		raw, err := json.Marshal(typed)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
