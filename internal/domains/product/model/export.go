package model

import "fmt"

// Column groups used by the export column picker.
const (
	GroupBasic       = "basic"
	GroupDescription = "description"
	GroupPhysical    = "physical"
	GroupBarcodes    = "barcodes"
	GroupMedia       = "media"
	GroupStatus      = "status"
)

// ExportColumn describes one exportable field: its canonical id, the header
// written to CSV/XLSX files, the property name used in JSON exports and
// whether the column is part of the default selection. Headers round-trip
// through the import header normalizer back to the same canonical id.
type ExportColumn struct {
	Field   string `json:"field"`
	Title   string `json:"title"`
	JSON    string `json:"json"`
	Group   string `json:"group"`
	Default bool   `json:"default"`
}

// ExportColumns returns the full ordered column catalog.
func ExportColumns() []ExportColumn {
	cols := []ExportColumn{
		{Field: "id", Title: "ID", JSON: "id", Group: GroupBasic, Default: true},
		{Field: "name", Title: "Ürün Adı", JSON: "name", Group: GroupBasic, Default: true},
		{Field: "brand", Title: "Marka", JSON: "brand", Group: GroupBasic, Default: true},
		{Field: "category", Title: "Kategori", JSON: "categoryName", Group: GroupBasic, Default: true},
		{Field: "sku", Title: "SKU", JSON: "sku", Group: GroupBasic, Default: true},

		{Field: "description", Title: "Açıklama", JSON: "description", Group: GroupDescription, Default: true},
		{Field: "features", Title: "Özellikler", JSON: "features", Group: GroupDescription},
		{Field: "notes", Title: "Notlar", JSON: "notes", Group: GroupDescription},

		{Field: "weight", Title: "Ağırlık", JSON: "weight", Group: GroupPhysical, Default: true},
		{Field: "desi", Title: "Desi", JSON: "desi", Group: GroupPhysical, Default: true},
		{Field: "width", Title: "En", JSON: "width", Group: GroupPhysical},
		{Field: "height", Title: "Boy", JSON: "height", Group: GroupPhysical},
		{Field: "depth", Title: "Derinlik", JSON: "depth", Group: GroupPhysical},
		{Field: "length", Title: "Uzunluk", JSON: "length", Group: GroupPhysical},
		{Field: "warranty", Title: "Garanti Süresi", JSON: "warrantyMonths", Group: GroupPhysical},
		{Field: "material", Title: "Malzeme", JSON: "material", Group: GroupPhysical},
		{Field: "color", Title: "Renk", JSON: "color", Group: GroupPhysical},

		{Field: "trendyolbarcode", Title: "Trendyol Barkod", JSON: "trendyolBarcode", Group: GroupBarcodes, Default: true},
		{Field: "hepsiburadabarcode", Title: "Hepsiburada Barkod", JSON: "hepsiburadaBarcode", Group: GroupBarcodes, Default: true},
		{Field: "hepsiburadasellerstockcode", Title: "Hepsiburada Satıcı Stok Kodu", JSON: "hepsiburadaSellerStockCode", Group: GroupBarcodes},
		{Field: "hepsiburadasupplybarcode", Title: "Hepsiburada Tedarik Barkodu", JSON: "hepsiburadaSupplyBarcode", Group: GroupBarcodes},
		{Field: "koctasbarcode", Title: "Koçtaş Barkod", JSON: "koctasBarcode", Group: GroupBarcodes},
		{Field: "koctasistanbulbarcode", Title: "Koçtaş İstanbul Barkod", JSON: "koctasIstanbulBarcode", Group: GroupBarcodes},
		{Field: "koctaseanbarcode", Title: "Koçtaş EAN", JSON: "koctasEanBarcode", Group: GroupBarcodes},
		{Field: "koctaseanistanbulbarcode", Title: "Koçtaş EAN İstanbul", JSON: "koctasEanIstanbulBarcode", Group: GroupBarcodes},
		{Field: "pttavmbarcode", Title: "PttAVM Barkod", JSON: "pttAvmBarcode", Group: GroupBarcodes},
		{Field: "pttproductcode", Title: "Ptt Ürün Kodu", JSON: "pttProductCode", Group: GroupBarcodes},
		{Field: "pazaramabarcode", Title: "Pazarama Barkod", JSON: "pazaramaBarcode", Group: GroupBarcodes},
		{Field: "haceyapibarcode", Title: "Haceyapı Barkod", JSON: "haceyapiBarcode", Group: GroupBarcodes},
		{Field: "amazonbarcode", Title: "Amazon Barkod", JSON: "amazonBarcode", Group: GroupBarcodes},
		{Field: "n11catalogid", Title: "N11 Katalog ID", JSON: "n11CatalogId", Group: GroupBarcodes},
		{Field: "n11productcode", Title: "N11 Ürün Kodu", JSON: "n11ProductCode", Group: GroupBarcodes},
		{Field: "externalbarcode", Title: "Entegrasyon Barkod", JSON: "externalBarcode", Group: GroupBarcodes},
		{Field: "externalproductcode", Title: "Entegrasyon Ürün Kodu", JSON: "externalProductCode", Group: GroupBarcodes},
		{Field: "externalproductid", Title: "Entegrasyon Ürün ID", JSON: "externalProductId", Group: GroupBarcodes},
	}

	for i := 1; i <= MaxSpareBarcodes; i++ {
		cols = append(cols, ExportColumn{
			Field: fmt.Sprintf("sparebarcode%d", i),
			Title: fmt.Sprintf("Yedek Barkod %d", i),
			JSON:  fmt.Sprintf("spareBarcode%d", i),
			Group: GroupBarcodes,
		})
	}
	for i := 1; i <= MaxLogoBarcodes; i++ {
		cols = append(cols, ExportColumn{
			Field: fmt.Sprintf("logobarcode%d", i),
			Title: fmt.Sprintf("Logo Barkod %d", i),
			JSON:  fmt.Sprintf("logoBarcode%d", i),
			Group: GroupBarcodes,
		})
	}
	for i := 1; i <= MaxImages; i++ {
		cols = append(cols, ExportColumn{
			Field:   fmt.Sprintf("image%d", i),
			Title:   fmt.Sprintf("Resim %d", i),
			JSON:    fmt.Sprintf("image%d", i),
			Group:   GroupMedia,
			Default: i == 1,
		})
	}
	for i := 1; i <= MaxMarketplaceImages; i++ {
		cols = append(cols, ExportColumn{
			Field: fmt.Sprintf("marketplaceimage%d", i),
			Title: fmt.Sprintf("Pazaryeri Resim %d", i),
			JSON:  fmt.Sprintf("marketplaceImage%d", i),
			Group: GroupMedia,
		})
	}
	for i := 1; i <= MaxVideos; i++ {
		cols = append(cols, ExportColumn{
			Field: fmt.Sprintf("video%d", i),
			Title: fmt.Sprintf("Video %d", i),
			JSON:  fmt.Sprintf("video%d", i),
			Group: GroupMedia,
		})
	}

	cols = append(cols,
		ExportColumn{Field: "archived", Title: "Arşiv", JSON: "archived", Group: GroupStatus, Default: true},
		ExportColumn{Field: "createdat", Title: "Oluşturulma Tarihi", JSON: "createdAt", Group: GroupStatus},
		ExportColumn{Field: "updatedat", Title: "Güncellenme Tarihi", JSON: "updatedAt", Group: GroupStatus},
	)

	return cols
}

// DefaultExportColumns is the selection used when the caller names no fields.
func DefaultExportColumns() []ExportColumn {
	all := ExportColumns()
	defaults := make([]ExportColumn, 0, len(all))
	for _, col := range all {
		if col.Default {
			defaults = append(defaults, col)
		}
	}
	return defaults
}

// SelectExportColumns resolves field ids against the catalog, keeping the
// catalog order. Unknown ids are ignored; an empty selection falls back to
// the defaults.
func SelectExportColumns(fields []string) []ExportColumn {
	if len(fields) == 0 {
		return DefaultExportColumns()
	}

	wanted := make(map[string]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	all := ExportColumns()
	selected := make([]ExportColumn, 0, len(fields))
	for _, col := range all {
		if wanted[col.Field] {
			selected = append(selected, col)
		}
	}
	return selected
}
