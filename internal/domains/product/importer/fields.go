package importer

import (
	"strconv"
	"strings"

	"catalog-backend/internal/domains/product/model"
)

// Canonical field identifiers. Every recognized import header normalizes to
// one of these (or to a numbered family member below); the row parser and the
// export writers switch on the same set.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldBrand       = "brand"
	FieldCategory    = "category"
	FieldSKU         = "sku"
	FieldDescription = "description"
	FieldDescHTML    = "descriptionhtml"
	FieldDescPlain   = "descriptionplain"
	FieldFeatures    = "features"
	FieldNotes       = "notes"

	FieldWeight   = "weight"
	FieldDesi     = "desi"
	FieldWidth    = "width"
	FieldHeight   = "height"
	FieldDepth    = "depth"
	FieldLength   = "length"
	FieldWarranty = "warranty"
	FieldMaterial = "material"
	FieldColor    = "color"

	FieldTrendyolBarcode            = "trendyolbarcode"
	FieldHepsiburadaBarcode         = "hepsiburadabarcode"
	FieldHepsiburadaSellerStockCode = "hepsiburadasellerstockcode"
	FieldHepsiburadaSupplyBarcode   = "hepsiburadasupplybarcode"
	FieldKoctasBarcode              = "koctasbarcode"
	FieldKoctasIstanbulBarcode      = "koctasistanbulbarcode"
	FieldKoctasEANBarcode           = "koctaseanbarcode"
	FieldKoctasEANIstanbulBarcode   = "koctaseanistanbulbarcode"
	FieldPttAvmBarcode              = "pttavmbarcode"
	FieldPttProductCode             = "pttproductcode"
	FieldPazaramaBarcode            = "pazaramabarcode"
	FieldHaceyapiBarcode            = "haceyapibarcode"
	FieldAmazonBarcode              = "amazonbarcode"
	FieldN11CatalogID               = "n11catalogid"
	FieldN11ProductCode             = "n11productcode"
	FieldExternalBarcode            = "externalbarcode"
	FieldExternalProductCode        = "externalproductcode"
	FieldExternalProductID          = "externalproductid"

	FieldArchived = "archived"
	FieldActive   = "active"

	FieldCreatedAt = "createdat"
	FieldUpdatedAt = "updatedat"
)

// Numbered family prefixes. A canonical family member is prefix + 1-based
// index, e.g. "logobarcode3".
const (
	familySpareBarcode     = "sparebarcode"
	familyLogoBarcode      = "logobarcode"
	familyMarketplaceImage = "marketplaceimage"
	familyImage            = "image"
	familyVideo            = "video"
)

// splitFamily breaks a canonical family member into its prefix and 1-based
// index. The marketplace-image prefix is tested before the image prefix
// because one contains the other.
func splitFamily(field string) (prefix string, index int, ok bool) {
	for _, p := range []string{familySpareBarcode, familyLogoBarcode, familyMarketplaceImage, familyImage, familyVideo} {
		if !strings.HasPrefix(field, p) {
			continue
		}
		n, err := strconv.Atoi(field[len(p):])
		if err != nil || n < 1 {
			return "", 0, false
		}
		return p, n, true
	}
	return "", 0, false
}

func familyLimit(prefix string) int {
	switch prefix {
	case familySpareBarcode:
		return model.MaxSpareBarcodes
	case familyLogoBarcode:
		return model.MaxLogoBarcodes
	case familyMarketplaceImage:
		return model.MaxMarketplaceImages
	case familyImage:
		return model.MaxImages
	case familyVideo:
		return model.MaxVideos
	default:
		return 0
	}
}

// IsCanonical reports whether a normalized header maps to a field the row
// parser understands. Unrecognized headers are carried through normalization
// untouched and ignored by the parser.
func IsCanonical(field string) bool {
	if canonicalFields[field] {
		return true
	}
	if prefix, index, ok := splitFamily(field); ok {
		return index <= familyLimit(prefix)
	}
	return false
}

var canonicalFields = map[string]bool{
	FieldID: true, FieldName: true, FieldBrand: true, FieldCategory: true,
	FieldSKU: true, FieldDescription: true, FieldDescHTML: true,
	FieldDescPlain: true, FieldFeatures: true, FieldNotes: true,
	FieldWeight: true, FieldDesi: true, FieldWidth: true, FieldHeight: true,
	FieldDepth: true, FieldLength: true, FieldWarranty: true,
	FieldMaterial: true, FieldColor: true,
	FieldTrendyolBarcode: true, FieldHepsiburadaBarcode: true,
	FieldHepsiburadaSellerStockCode: true, FieldHepsiburadaSupplyBarcode: true,
	FieldKoctasBarcode: true, FieldKoctasIstanbulBarcode: true,
	FieldKoctasEANBarcode: true, FieldKoctasEANIstanbulBarcode: true,
	FieldPttAvmBarcode: true, FieldPttProductCode: true,
	FieldPazaramaBarcode: true, FieldHaceyapiBarcode: true,
	FieldAmazonBarcode: true, FieldN11CatalogID: true, FieldN11ProductCode: true,
	FieldExternalBarcode: true, FieldExternalProductCode: true,
	FieldExternalProductID: true,
	FieldArchived:          true, FieldActive: true,
	FieldCreatedAt: true, FieldUpdatedAt: true,
}
