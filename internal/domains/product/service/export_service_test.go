package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/domains/product/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture(t *testing.T) (*fakeProductRepo, service.ExportService) {
	t.Helper()

	repo := newFakeProductRepo()
	categoryID := int64(7)
	_, err := repo.Create(context.Background(), &model.Product{
		Name:            "Duşakabin 90x90",
		Brand:           "Hüppe",
		SKU:             "DSK-90",
		CategoryID:      &categoryID,
		CategoryName:    "Banyo",
		Description:     "<p>html açıklama</p>",
		Weight:          decimal.RequireFromString("12.5"),
		TrendyolBarcode: "869000111",
		LogoBarcodes:    []string{"L1", "", "L3"},
		Images:          []string{"a.jpg"},
		Archived:        false,
	})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), &model.Product{
		Name: "Lavabo Bataryası",
		SKU:  "LVB-01",
	})
	require.NoError(t, err)

	return repo, service.NewExportService(repo)
}

func TestExport_CSV(t *testing.T) {
	_, svc := exportFixture(t)

	payload, err := svc.Export(context.Background(), importer.FormatCSV, []string{"name", "sku", "weight", "logobarcode3"})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", payload.ContentType)
	assert.True(t, strings.HasPrefix(payload.FileName, "products_"))
	assert.True(t, strings.HasSuffix(payload.FileName, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(payload.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Ürün Adı,SKU,Ağırlık,Logo Barkod 3", lines[0])
	assert.Equal(t, "Duşakabin 90x90,DSK-90,12.5,L3", lines[1])
	// Absent numerics render blank, not zero.
	assert.Equal(t, "Lavabo Bataryası,LVB-01,,", lines[2])
}

func TestExport_CSVRoundTripsThroughImporter(t *testing.T) {
	_, svc := exportFixture(t)

	fields := []string{"name", "sku", "category", "weight", "trendyolbarcode", "logobarcode3"}
	payload, err := svc.Export(context.Background(), importer.FormatCSV, fields)
	require.NoError(t, err)

	parsed, skipped, err := importer.Parse(importer.FormatCSV, bytes.NewReader(payload.Data))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, parsed, 2)

	first := parsed[0].Product
	assert.Equal(t, "Duşakabin 90x90", first.Name)
	assert.Equal(t, "DSK-90", first.SKU)
	assert.Equal(t, "Banyo", first.CategoryName)
	assert.True(t, decimal.RequireFromString("12.5").Equal(first.Weight))
	assert.Equal(t, "869000111", first.TrendyolBarcode)
	assert.Equal(t, "L3", first.LogoBarcodes[2])
}

func TestExport_JSON(t *testing.T) {
	_, svc := exportFixture(t)

	payload, err := svc.Export(context.Background(), importer.FormatJSON, []string{"id", "name", "trendyolbarcode", "archived"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", payload.ContentType)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(payload.Data, &records))
	require.Len(t, records, 2)

	assert.Equal(t, float64(1), records[0]["id"])
	assert.Equal(t, "Duşakabin 90x90", records[0]["name"])
	assert.Equal(t, "869000111", records[0]["trendyolBarcode"])
	assert.Equal(t, false, records[0]["archived"])
}

func TestExport_XML(t *testing.T) {
	_, svc := exportFixture(t)

	payload, err := svc.Export(context.Background(), importer.FormatXML, []string{"name", "sku", "description"})
	require.NoError(t, err)
	assert.Equal(t, "application/xml", payload.ContentType)

	body := string(payload.Data)
	assert.Contains(t, body, "<Products>")
	assert.Contains(t, body, "<description><![CDATA[<p>html açıklama</p>]]></description>")

	records, err := importer.ReadXML(bytes.NewReader(payload.Data))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, records[0], importer.Pair{Header: "description", Value: "<p>html açıklama</p>"})
}

func TestExport_XLSX(t *testing.T) {
	_, svc := exportFixture(t)

	payload, err := svc.Export(context.Background(), importer.FormatXLSX, []string{"name", "sku"})
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload.ContentType)

	workbook, err := excelize.OpenReader(bytes.NewReader(payload.Data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Ürün Adı", "SKU"}, rows[0])
	assert.Equal(t, []string{"Duşakabin 90x90", "DSK-90"}, rows[1])
}

func TestExport_UnknownFieldsFallBackToDefaults(t *testing.T) {
	_, svc := exportFixture(t)

	payload, err := svc.Export(context.Background(), importer.FormatCSV, []string{"bilinmeyen"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload.Data)), "\n")
	wantHeaders := make([]string, 0)
	for _, col := range model.DefaultExportColumns() {
		wantHeaders = append(wantHeaders, col.Title)
	}
	assert.Equal(t, strings.Join(wantHeaders, ","), lines[0])
}

func TestExport_UnsupportedFormat(t *testing.T) {
	_, svc := exportFixture(t)

	_, err := svc.Export(context.Background(), importer.Format("pdf"), nil)
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}
