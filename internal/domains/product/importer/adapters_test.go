package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	payload := "\uFEFFÜrün Adı,SKU,Marka\nDuşakabin,DSK-90,Hüppe\nLavabo,LVB-01,VitrA\n"

	headers, rows, err := importer.ReadCSV(strings.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ürün Adı", "SKU", "Marka"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Duşakabin", "DSK-90", "Hüppe"}, rows[0])
}

func TestReadCSV_HeaderOnlyIsEmpty(t *testing.T) {
	_, _, err := importer.ReadCSV(strings.NewReader("Ürün Adı,SKU\n"))
	assert.ErrorIs(t, err, model.ErrEmptyFile)
}

func TestReadCSV_RaggedRowsTolerated(t *testing.T) {
	payload := "name,sku,brand\nÜrün A,A-1\nÜrün B,B-1,Marka,fazla\n"

	_, rows, err := importer.ReadCSV(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestReadXLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]string{"Ürün Adı", "SKU"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]string{"Duşakabin", "DSK-90"}))

	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, workbook.Close())

	headers, rows, err := importer.ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ürün Adı", "SKU"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Duşakabin", "DSK-90"}, rows[0])
}

func TestReadXML(t *testing.T) {
	payload := `<?xml version="1.0" encoding="UTF-8"?>
<Products>
  <Product>
    <name>Duşakabin</name>
    <sku>DSK-90</sku>
    <description><![CDATA[<p>html açıklama</p>]]></description>
  </Product>
  <Product>
    <UrunAdi>Lavabo</UrunAdi>
  </Product>
</Products>`

	records, err := importer.ReadXML(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Contains(t, records[0], importer.Pair{Header: "name", Value: "Duşakabin"})
	assert.Contains(t, records[0], importer.Pair{Header: "description", Value: "<p>html açıklama</p>"})
	assert.Contains(t, records[1], importer.Pair{Header: "UrunAdi", Value: "Lavabo"})
}

func TestReadXML_EmptyDocument(t *testing.T) {
	_, err := importer.ReadXML(strings.NewReader("<Products></Products>"))
	assert.ErrorIs(t, err, model.ErrEmptyFile)
}

func TestReadJSON(t *testing.T) {
	payload := `[
	  {"name": "Duşakabin", "sku": "DSK-90", "weight": 12.5, "archived": false},
	  {"urunAdi": "Lavabo", "trendyolBarcode": "869000111"}
	]`

	records, err := importer.ReadJSON(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Contains(t, records[0], importer.Pair{Header: "weight", Value: "12.5"})
	assert.Contains(t, records[0], importer.Pair{Header: "archived", Value: "false"})
	assert.Contains(t, records[1], importer.Pair{Header: "trendyolBarcode", Value: "869000111"})
}

func TestReadJSON_WrapperObjectTolerated(t *testing.T) {
	payload := `{"products": [{"name": "Ayna"}]}`

	records, err := importer.ReadJSON(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0], importer.Pair{Header: "name", Value: "Ayna"})
}

func TestReadJSON_NotAnArray(t *testing.T) {
	_, err := importer.ReadJSON(strings.NewReader(`{"name": "tek kayıt"}`))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]importer.Format{
		"urunler.csv":  importer.FormatCSV,
		"urunler.CSV":  importer.FormatCSV,
		"urunler.xlsx": importer.FormatXLSX,
		"urunler.xml":  importer.FormatXML,
		"urunler.json": importer.FormatJSON,
	}
	for filename, want := range cases {
		format, err := importer.DetectFormat(filename)
		require.NoError(t, err, filename)
		assert.Equal(t, want, format, filename)
	}

	_, err := importer.DetectFormat("urunler.pdf")
	assert.ErrorIs(t, err, model.ErrUnsupportedFormat)
}

func TestParse_AllFormatsConverge(t *testing.T) {
	csvPayload := "Ürün Adı,SKU\nDuşakabin,DSK-90\n"
	jsonPayload := `[{"name": "Duşakabin", "sku": "DSK-90"}]`
	xmlPayload := `<Products><Product><name>Duşakabin</name><sku>DSK-90</sku></Product></Products>`

	for format, payload := range map[importer.Format]string{
		importer.FormatCSV:  csvPayload,
		importer.FormatJSON: jsonPayload,
		importer.FormatXML:  xmlPayload,
	} {
		parsed, skipped, err := importer.Parse(format, strings.NewReader(payload))
		require.NoError(t, err, format)
		assert.Zero(t, skipped, format)
		require.Len(t, parsed, 1, format)
		assert.Equal(t, "Duşakabin", parsed[0].Product.Name, format)
		assert.Equal(t, "DSK-90", parsed[0].Product.SKU, format)
	}
}
