package importer_test

import (
	"testing"

	"catalog-backend/internal/domains/product/importer"
	"catalog-backend/internal/domains/product/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Duşakabin 90x90", SKU: "DSK-90"},
		{ID: 2, Name: "Lavabo Bataryası", SKU: "LVB-01"},
		{ID: 3, Name: "Ayna 60cm", SKU: ""},
	}
}

func TestMatch_ByIDBeatsSKUAndName(t *testing.T) {
	index := importer.NewIndex(catalogFixture())

	// The draft carries id 2 but the SKU and name of product 1.
	match := index.Match(&model.Product{ID: 2, SKU: "DSK-90", Name: "Duşakabin 90x90"})
	require.NotNil(t, match)
	assert.Equal(t, int64(2), match.ID)
}

func TestMatch_BySKUBeatsName(t *testing.T) {
	index := importer.NewIndex(catalogFixture())

	match := index.Match(&model.Product{SKU: "lvb-01", Name: "Ayna 60cm"})
	require.NotNil(t, match)
	assert.Equal(t, int64(2), match.ID)
}

func TestMatch_ByNameCaseInsensitive(t *testing.T) {
	index := importer.NewIndex(catalogFixture())

	match := index.Match(&model.Product{Name: "  AYNA 60CM  "})
	require.NotNil(t, match)
	assert.Equal(t, int64(3), match.ID)
}

func TestMatch_UnknownIDFallsThroughToSKU(t *testing.T) {
	index := importer.NewIndex(catalogFixture())

	match := index.Match(&model.Product{ID: 999, SKU: "DSK-90"})
	require.NotNil(t, match)
	assert.Equal(t, int64(1), match.ID)
}

func TestMatch_NoIdentifiersMatchNothing(t *testing.T) {
	index := importer.NewIndex(catalogFixture())

	assert.Nil(t, index.Match(&model.Product{Name: "Yeni Ürün", SKU: "YENI-1"}))
	assert.Nil(t, index.Match(nil))
}

func TestNewIndex_FirstRecordWinsDuplicateKeys(t *testing.T) {
	index := importer.NewIndex([]model.Product{
		{ID: 10, Name: "Çift Kayıt", SKU: "DUP-1"},
		{ID: 11, Name: "Çift Kayıt", SKU: "DUP-1"},
	})

	match := index.Match(&model.Product{SKU: "DUP-1"})
	require.NotNil(t, match)
	assert.Equal(t, int64(10), match.ID)
}

func TestAdd_MakesInsertedRecordMatchable(t *testing.T) {
	index := importer.NewIndex(nil)

	draft := &model.Product{Name: "Yeni Ürün", SKU: "YENI-1"}
	assert.Nil(t, index.Match(draft))

	index.Add(&model.Product{ID: 42, Name: "Yeni Ürün", SKU: "YENI-1"})

	match := index.Match(&model.Product{SKU: "yeni-1"})
	require.NotNil(t, match)
	assert.Equal(t, int64(42), match.ID)
}
