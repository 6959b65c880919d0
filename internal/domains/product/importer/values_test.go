package importer_test

import (
	"testing"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFieldValue(t *testing.T) {
	p := &model.Product{
		ID:              5,
		Name:            "Duşakabin",
		CategoryName:    "Banyo",
		Weight:          decimal.RequireFromString("12.5"),
		WarrantyMonths:  24,
		TrendyolBarcode: "869000111",
		LogoBarcodes:    []string{"L1", "", "L3"},
		Images:          []string{"a.jpg"},
		SpareBarcode2:   "SB2",
		Archived:        true,
	}

	assert.Equal(t, "5", importer.FieldValue(p, "id"))
	assert.Equal(t, "Duşakabin", importer.FieldValue(p, "name"))
	assert.Equal(t, "Banyo", importer.FieldValue(p, "category"))
	assert.Equal(t, "12.5", importer.FieldValue(p, "weight"))
	assert.Equal(t, "24", importer.FieldValue(p, "warranty"))
	assert.Equal(t, "869000111", importer.FieldValue(p, "trendyolbarcode"))
	assert.Equal(t, "L3", importer.FieldValue(p, "logobarcode3"))
	assert.Equal(t, "", importer.FieldValue(p, "logobarcode2"))
	assert.Equal(t, "a.jpg", importer.FieldValue(p, "image1"))
	assert.Equal(t, "", importer.FieldValue(p, "image2"))
	assert.Equal(t, "SB2", importer.FieldValue(p, "sparebarcode2"))
	assert.Equal(t, "true", importer.FieldValue(p, "archived"))
	assert.Equal(t, "false", importer.FieldValue(p, "active"))
}

func TestFieldValue_ZeroNumericsRenderEmpty(t *testing.T) {
	p := &model.Product{Name: "Ürün"}

	assert.Equal(t, "", importer.FieldValue(p, "id"))
	assert.Equal(t, "", importer.FieldValue(p, "weight"))
	assert.Equal(t, "", importer.FieldValue(p, "warranty"))
	assert.Equal(t, "", importer.FieldValue(p, "createdat"))
}

// Every export column title must normalize back to its own field id, so a
// file exported with default headers re-imports onto the same fields.
func TestExportTitlesRoundTripThroughNormalizer(t *testing.T) {
	for _, col := range model.ExportColumns() {
		assert.Equal(t, col.Field, importer.NormalizeHeader(col.Title), "title %q", col.Title)
	}
}

// JSON property names must round-trip the same way for JSON and XML exports.
func TestExportJSONNamesRoundTripThroughNormalizer(t *testing.T) {
	for _, col := range model.ExportColumns() {
		assert.Equal(t, col.Field, importer.NormalizeHeader(col.JSON), "json name %q", col.JSON)
	}
}
