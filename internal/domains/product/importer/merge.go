package importer

import (
	"strings"
	"time"

	"catalog-backend/internal/domains/product/model"

	"github.com/shopspring/decimal"
)

// Merge folds an incoming draft into an existing record without clobbering
// stored data the file did not supply:
//
//   - string fields overwrite only with a non-blank value
//   - numeric fields overwrite only with a strictly positive value, so a
//     zero cell cannot erase a stored measurement
//   - list fields replace wholesale, but only when the incoming list carries
//     at least one non-blank slot
//   - the archive flag follows the file unless PreserveArchiveStatus is set
//
// The existing record's identity and creation time always survive. The input
// records are not mutated; the merged copy is returned.
func Merge(existing model.Product, incoming model.Product, opts model.ImportOptions) model.Product {
	merged := existing

	mergeString(&merged.Name, incoming.Name)
	mergeString(&merged.Brand, incoming.Brand)
	mergeString(&merged.SKU, incoming.SKU)
	mergeString(&merged.Description, incoming.Description)
	mergeString(&merged.Features, incoming.Features)
	mergeString(&merged.Notes, incoming.Notes)
	mergeString(&merged.Material, incoming.Material)
	mergeString(&merged.Color, incoming.Color)

	// A category name on the row wins over the stored assignment; the id is
	// resolved by the coordinator before the merge runs.
	if strings.TrimSpace(incoming.CategoryName) != "" {
		merged.CategoryName = strings.TrimSpace(incoming.CategoryName)
		if incoming.CategoryID != nil {
			merged.CategoryID = incoming.CategoryID
		}
	}

	mergeDecimal(&merged.Weight, incoming.Weight)
	mergeDecimal(&merged.Desi, incoming.Desi)
	mergeDecimal(&merged.Width, incoming.Width)
	mergeDecimal(&merged.Height, incoming.Height)
	mergeDecimal(&merged.Depth, incoming.Depth)
	mergeDecimal(&merged.Length, incoming.Length)
	if incoming.WarrantyMonths > 0 {
		merged.WarrantyMonths = incoming.WarrantyMonths
	}

	mergeString(&merged.TrendyolBarcode, incoming.TrendyolBarcode)
	mergeString(&merged.HepsiburadaBarcode, incoming.HepsiburadaBarcode)
	mergeString(&merged.HepsiburadaSellerStockCode, incoming.HepsiburadaSellerStockCode)
	mergeString(&merged.HepsiburadaSupplyBarcode, incoming.HepsiburadaSupplyBarcode)
	mergeString(&merged.KoctasBarcode, incoming.KoctasBarcode)
	mergeString(&merged.KoctasIstanbulBarcode, incoming.KoctasIstanbulBarcode)
	mergeString(&merged.KoctasEANBarcode, incoming.KoctasEANBarcode)
	mergeString(&merged.KoctasEANIstanbulBarcode, incoming.KoctasEANIstanbulBarcode)
	mergeString(&merged.PttAvmBarcode, incoming.PttAvmBarcode)
	mergeString(&merged.PttProductCode, incoming.PttProductCode)
	mergeString(&merged.PazaramaBarcode, incoming.PazaramaBarcode)
	mergeString(&merged.HaceyapiBarcode, incoming.HaceyapiBarcode)
	mergeString(&merged.AmazonBarcode, incoming.AmazonBarcode)
	mergeString(&merged.N11CatalogID, incoming.N11CatalogID)
	mergeString(&merged.N11ProductCode, incoming.N11ProductCode)
	mergeString(&merged.ExternalBarcode, incoming.ExternalBarcode)
	mergeString(&merged.ExternalProductCode, incoming.ExternalProductCode)
	mergeString(&merged.ExternalProductID, incoming.ExternalProductID)
	mergeString(&merged.SpareBarcode1, incoming.SpareBarcode1)
	mergeString(&merged.SpareBarcode2, incoming.SpareBarcode2)
	mergeString(&merged.SpareBarcode3, incoming.SpareBarcode3)
	mergeString(&merged.SpareBarcode4, incoming.SpareBarcode4)

	mergeList(&merged.LogoBarcodes, incoming.LogoBarcodes)
	imagesReplaced := mergeList(&merged.Images, incoming.Images)
	mergeList(&merged.MarketplaceImages, incoming.MarketplaceImages)
	mergeList(&merged.Videos, incoming.Videos)

	if imagesReplaced {
		merged.PrimaryImage = model.FirstNonEmpty(merged.Images)
	} else {
		mergeString(&merged.PrimaryImage, incoming.PrimaryImage)
	}

	if !opts.PreserveArchiveStatus {
		merged.Archived = incoming.Archived
	}

	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.UpdatedAt = time.Now()

	return merged
}

func mergeString(dst *string, src string) {
	if trimmed := strings.TrimSpace(src); trimmed != "" {
		*dst = trimmed
	}
}

func mergeDecimal(dst *decimal.Decimal, src decimal.Decimal) {
	if src.GreaterThan(decimal.Zero) {
		*dst = src
	}
}

// mergeList replaces the stored list when the incoming one has any real
// content. A copy is taken so later mutation of the draft cannot alias into
// the merged record. Reports whether a replacement happened.
func mergeList(dst *[]string, src []string) bool {
	if !model.HasAnyValue(src) {
		return false
	}
	replacement := make([]string, len(src))
	copy(replacement, src)
	*dst = replacement
	return true
}
