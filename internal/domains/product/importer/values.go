package importer

import (
	"strconv"
	"time"

	"catalog-backend/internal/domains/product/model"

	"github.com/shopspring/decimal"
)

// FieldValue renders a product field as an export cell. It is the inverse of
// ParseRow: zero-valued numerics render empty (they mean "not supplied"), so
// a file exported and re-imported merges as a no-op.
func FieldValue(p *model.Product, field string) string {
	if prefix, index, ok := splitFamily(field); ok {
		return familyValue(p, prefix, index)
	}

	switch field {
	case FieldID:
		if p.ID <= 0 {
			return ""
		}
		return strconv.FormatInt(p.ID, 10)
	case FieldName:
		return p.Name
	case FieldBrand:
		return p.Brand
	case FieldCategory:
		return p.CategoryName
	case FieldSKU:
		return p.SKU
	case FieldDescription, FieldDescHTML:
		return p.Description
	case FieldFeatures:
		return p.Features
	case FieldNotes:
		return p.Notes

	case FieldWeight:
		return decimalValue(p.Weight)
	case FieldDesi:
		return decimalValue(p.Desi)
	case FieldWidth:
		return decimalValue(p.Width)
	case FieldHeight:
		return decimalValue(p.Height)
	case FieldDepth:
		return decimalValue(p.Depth)
	case FieldLength:
		return decimalValue(p.Length)
	case FieldWarranty:
		if p.WarrantyMonths <= 0 {
			return ""
		}
		return strconv.Itoa(p.WarrantyMonths)
	case FieldMaterial:
		return p.Material
	case FieldColor:
		return p.Color

	case FieldTrendyolBarcode:
		return p.TrendyolBarcode
	case FieldHepsiburadaBarcode:
		return p.HepsiburadaBarcode
	case FieldHepsiburadaSellerStockCode:
		return p.HepsiburadaSellerStockCode
	case FieldHepsiburadaSupplyBarcode:
		return p.HepsiburadaSupplyBarcode
	case FieldKoctasBarcode:
		return p.KoctasBarcode
	case FieldKoctasIstanbulBarcode:
		return p.KoctasIstanbulBarcode
	case FieldKoctasEANBarcode:
		return p.KoctasEANBarcode
	case FieldKoctasEANIstanbulBarcode:
		return p.KoctasEANIstanbulBarcode
	case FieldPttAvmBarcode:
		return p.PttAvmBarcode
	case FieldPttProductCode:
		return p.PttProductCode
	case FieldPazaramaBarcode:
		return p.PazaramaBarcode
	case FieldHaceyapiBarcode:
		return p.HaceyapiBarcode
	case FieldAmazonBarcode:
		return p.AmazonBarcode
	case FieldN11CatalogID:
		return p.N11CatalogID
	case FieldN11ProductCode:
		return p.N11ProductCode
	case FieldExternalBarcode:
		return p.ExternalBarcode
	case FieldExternalProductCode:
		return p.ExternalProductCode
	case FieldExternalProductID:
		return p.ExternalProductID

	case FieldArchived:
		return strconv.FormatBool(p.Archived)
	case FieldActive:
		return strconv.FormatBool(!p.Archived)

	case FieldCreatedAt:
		return timeValue(p.CreatedAt)
	case FieldUpdatedAt:
		return timeValue(p.UpdatedAt)
	}

	return ""
}

func familyValue(p *model.Product, prefix string, index int) string {
	switch prefix {
	case familySpareBarcode:
		switch index {
		case 1:
			return p.SpareBarcode1
		case 2:
			return p.SpareBarcode2
		case 3:
			return p.SpareBarcode3
		case 4:
			return p.SpareBarcode4
		}
	case familyLogoBarcode:
		return slotValue(p.LogoBarcodes, index)
	case familyMarketplaceImage:
		return slotValue(p.MarketplaceImages, index)
	case familyImage:
		return slotValue(p.Images, index)
	case familyVideo:
		return slotValue(p.Videos, index)
	}
	return ""
}

func slotValue(list []string, index int) string {
	if index < 1 || index > len(list) {
		return ""
	}
	return list[index-1]
}

func decimalValue(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func timeValue(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
