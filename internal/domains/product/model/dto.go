package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ProductRequest is the create/update payload for the CRUD endpoints.
// Import rows never go through this type; they are parsed and merged by the
// importer pipeline instead.
type ProductRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	CategoryID   *int64 `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	SKU          string `json:"sku"`
	Description  string `json:"description"`
	Features     string `json:"features"`
	Notes        string `json:"notes"`

	Weight         decimal.Decimal `json:"weight"`
	Desi           decimal.Decimal `json:"desi"`
	Width          decimal.Decimal `json:"width"`
	Height         decimal.Decimal `json:"height"`
	Depth          decimal.Decimal `json:"depth"`
	Length         decimal.Decimal `json:"length"`
	WarrantyMonths int             `json:"warrantyMonths"`
	Material       string          `json:"material"`
	Color          string          `json:"color"`

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
	ExternalBarcode            string `json:"externalBarcode"`
	ExternalProductCode        string `json:"externalProductCode"`
	ExternalProductID          string `json:"externalProductId"`
	SpareBarcode1              string `json:"spareBarcode1"`
	SpareBarcode2              string `json:"spareBarcode2"`
	SpareBarcode3              string `json:"spareBarcode3"`
	SpareBarcode4              string `json:"spareBarcode4"`

	LogoBarcodes      []string `json:"logoBarcodes"`
	Images            []string `json:"images"`
	MarketplaceImages []string `json:"marketplaceImages"`
	Videos            []string `json:"videos"`

	Archived bool `json:"archived"`
}

func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Brand, validation.Length(0, 255)),
		validation.Field(&r.SKU, validation.Length(0, 255)),
		validation.Field(&r.WarrantyMonths, validation.Min(0)),
		validation.Field(&r.LogoBarcodes, validation.Length(0, MaxLogoBarcodes)),
		validation.Field(&r.Images, validation.Length(0, MaxImages)),
		validation.Field(&r.MarketplaceImages, validation.Length(0, MaxMarketplaceImages)),
		validation.Field(&r.Videos, validation.Length(0, MaxVideos)),
	)
}

// ToProduct maps the request onto an entity; Normalize runs in the service.
func (r ProductRequest) ToProduct() *Product {
	return &Product{
		Name:         r.Name,
		Brand:        r.Brand,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		SKU:          r.SKU,
		Description:  r.Description,
		Features:     r.Features,
		Notes:        r.Notes,

		Weight:         r.Weight,
		Desi:           r.Desi,
		Width:          r.Width,
		Height:         r.Height,
		Depth:          r.Depth,
		Length:         r.Length,
		WarrantyMonths: r.WarrantyMonths,
		Material:       r.Material,
		Color:          r.Color,

		TrendyolBarcode:            r.TrendyolBarcode,
		HepsiburadaBarcode:         r.HepsiburadaBarcode,
		HepsiburadaSellerStockCode: r.HepsiburadaSellerStockCode,
		HepsiburadaSupplyBarcode:   r.HepsiburadaSupplyBarcode,
		KoctasBarcode:              r.KoctasBarcode,
		KoctasIstanbulBarcode:      r.KoctasIstanbulBarcode,
		KoctasEANBarcode:           r.KoctasEANBarcode,
		KoctasEANIstanbulBarcode:   r.KoctasEANIstanbulBarcode,
		PttAvmBarcode:              r.PttAvmBarcode,
		PttProductCode:             r.PttProductCode,
		PazaramaBarcode:            r.PazaramaBarcode,
		HaceyapiBarcode:            r.HaceyapiBarcode,
		AmazonBarcode:              r.AmazonBarcode,
		N11CatalogID:               r.N11CatalogID,
		N11ProductCode:             r.N11ProductCode,
		ExternalBarcode:            r.ExternalBarcode,
		ExternalProductCode:        r.ExternalProductCode,
		ExternalProductID:          r.ExternalProductID,
		SpareBarcode1:              r.SpareBarcode1,
		SpareBarcode2:              r.SpareBarcode2,
		SpareBarcode3:              r.SpareBarcode3,
		SpareBarcode4:              r.SpareBarcode4,

		LogoBarcodes:      r.LogoBarcodes,
		Images:            r.Images,
		MarketplaceImages: r.MarketplaceImages,
		Videos:            r.Videos,

		Archived: r.Archived,
	}
}

// ListFilter narrows the product list endpoint.
type ListFilter struct {
	Search     string
	CategoryID *int64
	Archived   *bool
	Limit      int
	Offset     int
}
