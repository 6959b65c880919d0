package importer_test

import (
	"testing"
	"time"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func existingFixture() model.Product {
	categoryID := int64(7)
	return model.Product{
		ID:              5,
		Name:            "Duşakabin 90x90",
		Brand:           "Hüppe",
		SKU:             "DSK-90",
		CategoryID:      &categoryID,
		CategoryName:    "Banyo",
		Description:     "<p>eski açıklama</p>",
		Weight:          decimal.RequireFromString("12.5"),
		Desi:            decimal.NewFromInt(3),
		TrendyolBarcode: "869000111",
		LogoBarcodes:    []string{"L1", "", "L3"},
		Images:          []string{"a.jpg", "b.jpg"},
		PrimaryImage:    "a.jpg",
		Archived:        false,
		CreatedAt:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMerge_EmptyDraftIsNonDestructive(t *testing.T) {
	existing := existingFixture()

	merged := importer.Merge(existing, model.Product{Name: existing.Name}, model.ImportOptions{})

	assert.Equal(t, existing.ID, merged.ID)
	assert.Equal(t, existing.Brand, merged.Brand)
	assert.Equal(t, existing.SKU, merged.SKU)
	assert.Equal(t, existing.Description, merged.Description)
	assert.True(t, existing.Weight.Equal(merged.Weight))
	assert.Equal(t, existing.TrendyolBarcode, merged.TrendyolBarcode)
	assert.Equal(t, existing.LogoBarcodes, merged.LogoBarcodes)
	assert.Equal(t, existing.Images, merged.Images)
	assert.Equal(t, existing.CreatedAt, merged.CreatedAt)
}

func TestMerge_ZeroNumericsDoNotClobber(t *testing.T) {
	existing := existingFixture()

	incoming := model.Product{Name: existing.Name, Weight: decimal.Zero, Desi: decimal.Zero}
	merged := importer.Merge(existing, incoming, model.ImportOptions{})

	assert.True(t, existing.Weight.Equal(merged.Weight))
	assert.True(t, existing.Desi.Equal(merged.Desi))

	incoming.Weight = decimal.RequireFromString("14.25")
	merged = importer.Merge(existing, incoming, model.ImportOptions{})
	assert.True(t, incoming.Weight.Equal(merged.Weight))
}

func TestMerge_NonEmptyStringsOverwrite(t *testing.T) {
	existing := existingFixture()

	incoming := model.Product{
		Name:            existing.Name,
		Brand:           "  VitrA  ",
		Description:     "<p>yeni açıklama</p>",
		TrendyolBarcode: "869000222",
	}
	merged := importer.Merge(existing, incoming, model.ImportOptions{})

	assert.Equal(t, "VitrA", merged.Brand)
	assert.Equal(t, "<p>yeni açıklama</p>", merged.Description)
	assert.Equal(t, "869000222", merged.TrendyolBarcode)
}

func TestMerge_ListsReplaceWholesale(t *testing.T) {
	existing := existingFixture()

	incoming := model.Product{Name: existing.Name, Images: []string{"c.jpg"}}
	merged := importer.Merge(existing, incoming, model.ImportOptions{})

	assert.Equal(t, []string{"c.jpg"}, merged.Images)
	assert.Equal(t, "c.jpg", merged.PrimaryImage)

	// A padding-only list counts as "not provided".
	incoming = model.Product{Name: existing.Name, Images: []string{"", ""}}
	merged = importer.Merge(existing, incoming, model.ImportOptions{})
	assert.Equal(t, existing.Images, merged.Images)
	assert.Equal(t, "a.jpg", merged.PrimaryImage)
}

func TestMerge_LogoBarcodeSlotsReplace(t *testing.T) {
	existing := existingFixture()

	incoming := model.Product{Name: existing.Name, LogoBarcodes: []string{"", "N2"}}
	merged := importer.Merge(existing, incoming, model.ImportOptions{})

	assert.Equal(t, []string{"", "N2"}, merged.LogoBarcodes)
}

func TestMerge_ArchiveFlagFollowsFileUnlessPreserved(t *testing.T) {
	existing := existingFixture()
	incoming := model.Product{Name: existing.Name, Archived: true}

	merged := importer.Merge(existing, incoming, model.ImportOptions{})
	assert.True(t, merged.Archived)

	merged = importer.Merge(existing, incoming, model.ImportOptions{PreserveArchiveStatus: true})
	assert.False(t, merged.Archived)
}

func TestMerge_CategoryNameWins(t *testing.T) {
	existing := existingFixture()
	newCategoryID := int64(9)

	incoming := model.Product{Name: existing.Name, CategoryName: "Banyo Aksesuarları", CategoryID: &newCategoryID}
	merged := importer.Merge(existing, incoming, model.ImportOptions{})

	assert.Equal(t, "Banyo Aksesuarları", merged.CategoryName)
	assert.Equal(t, int64(9), *merged.CategoryID)

	// Without a name on the row, the stored assignment survives.
	merged = importer.Merge(existing, model.Product{Name: existing.Name}, model.ImportOptions{})
	assert.Equal(t, "Banyo", merged.CategoryName)
	assert.Equal(t, int64(7), *merged.CategoryID)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	existing := existingFixture()
	incoming := model.Product{Name: existing.Name, Images: []string{"c.jpg"}}

	merged := importer.Merge(existing, incoming, model.ImportOptions{})
	merged.Images[0] = "mutated.jpg"

	assert.Equal(t, []string{"c.jpg"}, incoming.Images)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, existing.Images)
}
