package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Hard caps for the positional media/barcode slots. Import columns beyond
// these indexes are ignored.
const (
	MaxLogoBarcodes      = 10
	MaxImages            = 10
	MaxMarketplaceImages = 10
	MaxVideos            = 5
	MaxSpareBarcodes     = 4
)

// Product is the canonical catalog entity.
//
// LogoBarcodes, Images, MarketplaceImages and Videos are ordered lists where
// the index carries meaning (slot i maps to "logo barcode i+1" and so on).
// LogoBarcodes is persisted as a single comma-joined string for compatibility
// with the historical storage format; the encode/decode lives in
// EncodeLogoBarcodes / DecodeLogoBarcodes and is applied only at the
// repository boundary.
type Product struct {
	ID int64 `json:"id"`

	// Descriptive fields
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	CategoryID   *int64 `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName"`
	SKU          string `json:"sku"`
	Description  string `json:"description"` // HTML
	Features     string `json:"features"`
	Notes        string `json:"notes"`

	// Physical attributes
	Weight         decimal.Decimal `json:"weight"`
	Desi           decimal.Decimal `json:"desi"`
	Width          decimal.Decimal `json:"width"`
	Height         decimal.Decimal `json:"height"`
	Depth          decimal.Decimal `json:"depth"`
	Length         decimal.Decimal `json:"length"`
	WarrantyMonths int             `json:"warrantyMonths"`
	Material       string          `json:"material"`
	Color          string          `json:"color"`

	// Marketplace barcodes
	TrendyolBarcode            string `json:"trendyolBarcode"`
	HepsiburadaBarcode         string `json:"hepsiburadaBarcode"`
	HepsiburadaSellerStockCode string `json:"hepsiburadaSellerStockCode"`
	HepsiburadaSupplyBarcode   string `json:"hepsiburadaSupplyBarcode"`
	KoctasBarcode              string `json:"koctasBarcode"`
	KoctasIstanbulBarcode      string `json:"koctasIstanbulBarcode"`
	KoctasEANBarcode           string `json:"koctasEanBarcode"`
	KoctasEANIstanbulBarcode   string `json:"koctasEanIstanbulBarcode"`
	PttAvmBarcode              string `json:"pttAvmBarcode"`
	PttProductCode             string `json:"pttProductCode"`
	PazaramaBarcode            string `json:"pazaramaBarcode"`
	HaceyapiBarcode            string `json:"haceyapiBarcode"`
	AmazonBarcode              string `json:"amazonBarcode"`
	N11CatalogID               string `json:"n11CatalogId"`
	N11ProductCode             string `json:"n11ProductCode"`

	// External-integration barcode triple
	ExternalBarcode     string `json:"externalBarcode"`
	ExternalProductCode string `json:"externalProductCode"`
	ExternalProductID   string `json:"externalProductId"`

	// Generic spare barcode slots
	SpareBarcode1 string `json:"spareBarcode1"`
	SpareBarcode2 string `json:"spareBarcode2"`
	SpareBarcode3 string `json:"spareBarcode3"`
	SpareBarcode4 string `json:"spareBarcode4"`

	// Positional lists
	LogoBarcodes      []string `json:"logoBarcodes,omitempty"`
	Images            []string `json:"images,omitempty"`
	MarketplaceImages []string `json:"marketplaceImages,omitempty"`
	Videos            []string `json:"videos,omitempty"`
	PrimaryImage      string   `json:"primaryImage"`

	Archived bool `json:"archived"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EncodeLogoBarcodes joins the slots into the storage string.
// Interior empty slots are preserved so positions keep their meaning;
// trailing empty slots are trimmed.
// ["A","","C"] -> "A,,C"   ["A","",""] -> "A"
func EncodeLogoBarcodes(slots []string) string {
	end := len(slots)
	for end > 0 && strings.TrimSpace(slots[end-1]) == "" {
		end--
	}
	if end == 0 {
		return ""
	}

	trimmed := make([]string, end)
	for i := 0; i < end; i++ {
		trimmed[i] = strings.TrimSpace(slots[i])
	}
	return strings.Join(trimmed, ",")
}

// DecodeLogoBarcodes splits the storage string back into slots.
// "" decodes to nil; "A,,C" decodes to ["A","","C"].
func DecodeLogoBarcodes(encoded string) []string {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}

	parts := strings.Split(encoded, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// stringFields enumerates every free-text field of the product.
// Kept as an explicit list (not reflection) so the compiler catches a field
// rename; extend it when adding a string column.
func (p *Product) stringFields() []*string {
	return []*string{
		&p.Name, &p.Brand, &p.CategoryName, &p.SKU,
		&p.Description, &p.Features, &p.Notes,
		&p.Material, &p.Color,
		&p.TrendyolBarcode, &p.HepsiburadaBarcode,
		&p.HepsiburadaSellerStockCode, &p.HepsiburadaSupplyBarcode,
		&p.KoctasBarcode, &p.KoctasIstanbulBarcode,
		&p.KoctasEANBarcode, &p.KoctasEANIstanbulBarcode,
		&p.PttAvmBarcode, &p.PttProductCode,
		&p.PazaramaBarcode, &p.HaceyapiBarcode,
		&p.AmazonBarcode, &p.N11CatalogID, &p.N11ProductCode,
		&p.ExternalBarcode, &p.ExternalProductCode, &p.ExternalProductID,
		&p.SpareBarcode1, &p.SpareBarcode2, &p.SpareBarcode3, &p.SpareBarcode4,
		&p.PrimaryImage,
	}
}

// Normalize enforces the persistence invariants: string fields are trimmed
// and never null, numeric fields never negative, lists capped at their slot
// limits, and the primary image mirrors the first non-empty image slot.
func (p *Product) Normalize() {
	for _, field := range p.stringFields() {
		*field = strings.TrimSpace(*field)
	}

	for _, field := range []*decimal.Decimal{&p.Weight, &p.Desi, &p.Width, &p.Height, &p.Depth, &p.Length} {
		if field.IsNegative() {
			*field = decimal.Zero
		}
	}
	if p.WarrantyMonths < 0 {
		p.WarrantyMonths = 0
	}

	p.LogoBarcodes = capList(p.LogoBarcodes, MaxLogoBarcodes)
	p.Images = capList(p.Images, MaxImages)
	p.MarketplaceImages = capList(p.MarketplaceImages, MaxMarketplaceImages)
	p.Videos = capList(p.Videos, MaxVideos)

	if p.PrimaryImage == "" {
		p.PrimaryImage = FirstNonEmpty(p.Images)
	}
}

func capList(list []string, max int) []string {
	if len(list) > max {
		list = list[:max]
	}
	for i := range list {
		list[i] = strings.TrimSpace(list[i])
	}
	return list
}

// FirstNonEmpty returns the first non-blank entry of a slot list.
func FirstNonEmpty(list []string) string {
	for _, v := range list {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// HasAnyValue reports whether any slot in the list is non-blank.
// A list of padding-only slots counts as "not provided" during merges.
func HasAnyValue(list []string) bool {
	return FirstNonEmpty(list) != ""
}
