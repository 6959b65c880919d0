package importer_test

import (
	"testing"

	"catalog-backend/internal/domains/product/importer"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader_TurkishAndEnglishAliases(t *testing.T) {
	cases := map[string]string{
		"Ürün Adı":         "name",
		"urun_adi":         "name",
		"NAME":             "name",
		"Marka":            "brand",
		"Kategori":         "category",
		"Stok Kodu":        "sku",
		"SKU":              "sku",
		"Açıklama":         "description",
		"Açıklama (HTML)":  "descriptionhtml",
		"Ağırlık":          "weight",
		"Garanti Süresi":   "warranty",
		"Trendyol Barkod":  "trendyolbarcode",
		"Koçtaş EAN":       "koctaseanbarcode",
		"PttAVM Barkod":    "pttavmbarcode",
		"Entegrasyon Ürün Kodu": "externalproductcode",
		"Aktif":            "active",
		"Arşiv":            "archived",
	}

	for raw, want := range cases {
		assert.Equal(t, want, importer.NormalizeHeader(raw), "header %q", raw)
	}
}

func TestNormalizeHeader_NumberedFamilies(t *testing.T) {
	assert.Equal(t, "logobarcode3", importer.NormalizeHeader("Logo Barkod 3"))
	assert.Equal(t, "logobarcode10", importer.NormalizeHeader("logobarcode10"))
	assert.Equal(t, "image2", importer.NormalizeHeader("Resim 2"))
	assert.Equal(t, "image1", importer.NormalizeHeader("Resim"))
	assert.Equal(t, "marketplaceimage4", importer.NormalizeHeader("Pazaryeri Resim 4"))
	assert.Equal(t, "video5", importer.NormalizeHeader("Video 5"))
	assert.Equal(t, "sparebarcode2", importer.NormalizeHeader("Yedek Barkod 2"))
	assert.Equal(t, "sparebarcode1", importer.NormalizeHeader("Barkod 1"))
}

func TestNormalizeHeader_CanonicalIsIdempotent(t *testing.T) {
	canonical := []string{
		"name", "brand", "category", "sku", "description",
		"weight", "desi", "warranty",
		"trendyolbarcode", "hepsiburadasellerstockcode", "koctaseanistanbulbarcode",
		"externalproductid", "logobarcode7", "marketplaceimage9", "video5",
		"archived", "active",
	}

	for _, field := range canonical {
		assert.Equal(t, field, importer.NormalizeHeader(field), "canonical %q", field)
	}
}

func TestNormalizeHeader_UnknownPassesThroughNormalized(t *testing.T) {
	assert.Equal(t, "tedarikcikodu", importer.NormalizeHeader("Tedarikçi Kodu"))
	assert.False(t, importer.IsCanonical("tedarikcikodu"))
}

func TestNormalizeHeaders_ReportsUnknownColumns(t *testing.T) {
	fields, unknown := importer.NormalizeHeaders([]string{"Ürün Adı", "SKU", "Gizli Kolon"})

	assert.Equal(t, []string{"name", "sku", "gizlikolon"}, fields)
	assert.Equal(t, []string{"gizlikolon"}, unknown)
}

func TestIsCanonical_FamilyBounds(t *testing.T) {
	assert.True(t, importer.IsCanonical("logobarcode10"))
	assert.False(t, importer.IsCanonical("logobarcode11"))
	assert.True(t, importer.IsCanonical("video5"))
	assert.False(t, importer.IsCanonical("video6"))
	assert.False(t, importer.IsCanonical("image0"))
}
