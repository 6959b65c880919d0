package model_test

import (
	"strings"
	"testing"

	"catalog-backend/internal/domains/product/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEncodeLogoBarcodes(t *testing.T) {
	assert.Equal(t, "A,,C", model.EncodeLogoBarcodes([]string{"A", "", "C"}))
	assert.Equal(t, "A", model.EncodeLogoBarcodes([]string{"A", "", ""}))
	assert.Equal(t, "", model.EncodeLogoBarcodes([]string{"", "", ""}))
	assert.Equal(t, "", model.EncodeLogoBarcodes(nil))
	assert.Equal(t, "A,B", model.EncodeLogoBarcodes([]string{" A ", " B "}))
}

func TestDecodeLogoBarcodes(t *testing.T) {
	assert.Equal(t, []string{"A", "", "C"}, model.DecodeLogoBarcodes("A,,C"))
	assert.Nil(t, model.DecodeLogoBarcodes(""))
	assert.Nil(t, model.DecodeLogoBarcodes("   "))
	assert.Equal(t, []string{"A", "B"}, model.DecodeLogoBarcodes(" A , B "))
}

func TestLogoBarcodes_RoundTrip(t *testing.T) {
	slots := []string{"L1", "", "L3", ""}

	decoded := model.DecodeLogoBarcodes(model.EncodeLogoBarcodes(slots))

	// Trailing blanks are dropped, interior positions survive.
	assert.Equal(t, []string{"L1", "", "L3"}, decoded)
	assert.Equal(t, "L3", decoded[2])
	assert.Equal(t, "", decoded[1])
}

func TestNormalize_TrimsAndClamps(t *testing.T) {
	p := &model.Product{
		Name:           "  Duşakabin  ",
		Brand:          " Hüppe ",
		SKU:            " DSK-90 ",
		Weight:         decimal.RequireFromString("-3"),
		WarrantyMonths: -6,
	}

	p.Normalize()

	assert.Equal(t, "Duşakabin", p.Name)
	assert.Equal(t, "Hüppe", p.Brand)
	assert.Equal(t, "DSK-90", p.SKU)
	assert.True(t, p.Weight.IsZero())
	assert.Zero(t, p.WarrantyMonths)
}

func TestNormalize_CapsSlotLists(t *testing.T) {
	p := &model.Product{Name: "Ürün"}
	for i := 0; i < 15; i++ {
		p.Images = append(p.Images, "img")
		p.LogoBarcodes = append(p.LogoBarcodes, "lb")
		p.MarketplaceImages = append(p.MarketplaceImages, "mp")
		p.Videos = append(p.Videos, "v")
	}

	p.Normalize()

	assert.Len(t, p.Images, model.MaxImages)
	assert.Len(t, p.LogoBarcodes, model.MaxLogoBarcodes)
	assert.Len(t, p.MarketplaceImages, model.MaxMarketplaceImages)
	assert.Len(t, p.Videos, model.MaxVideos)
}

func TestNormalize_PrimaryImageFollowsFirstSlot(t *testing.T) {
	p := &model.Product{Name: "Ürün", Images: []string{"", "b.jpg"}}
	p.Normalize()
	assert.Equal(t, "b.jpg", p.PrimaryImage)

	p = &model.Product{Name: "Ürün", PrimaryImage: "chosen.jpg", Images: []string{"a.jpg"}}
	p.Normalize()
	assert.Equal(t, "chosen.jpg", p.PrimaryImage)
}

func TestSelectExportColumns(t *testing.T) {
	defaults := model.SelectExportColumns(nil)
	assert.Equal(t, model.DefaultExportColumns(), defaults)

	selected := model.SelectExportColumns([]string{"sku", "name", "bilinmeyen"})
	assert.Len(t, selected, 2)
	// Catalog order, not request order.
	assert.Equal(t, "name", selected[0].Field)
	assert.Equal(t, "sku", selected[1].Field)
}

func TestExportColumns_UniqueFields(t *testing.T) {
	seen := map[string]bool{}
	for _, col := range model.ExportColumns() {
		assert.False(t, seen[col.Field], "duplicate column %s", col.Field)
		seen[col.Field] = true
		assert.NotEmpty(t, col.Title)
		assert.NotEmpty(t, col.JSON)
		assert.False(t, strings.Contains(col.Field, " "))
	}
	assert.True(t, seen["logobarcode10"])
	assert.True(t, seen["marketplaceimage10"])
	assert.True(t, seen["video5"])
}
