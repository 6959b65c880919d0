package importer

import (
	"strconv"
	"strings"

	"catalog-backend/internal/domains/product/model"
	"catalog-backend/internal/shared/utils"

	"github.com/shopspring/decimal"
)

// truthyTokens are the accepted spellings of "yes" in boolean columns,
// compared after Turkish folding and lowercasing. Anything else is false.
var truthyTokens = map[string]bool{
	"true": true, "1": true, "evet": true, "yes": true,
	"aktif": true, "active": true,
}

func isTruthy(value string) bool {
	return truthyTokens[strings.ToLower(utils.FoldTurkish(strings.TrimSpace(value)))]
}

// Description column precedence: HTML beats plain text beats the generic
// description column, regardless of column order in the file.
const (
	descRankNone = iota
	descRankGeneric
	descRankPlain
	descRankHTML
)

// ParsedRow pairs a parsed product with its 1-based data row number so the
// import coordinator can point errors back at the source file.
type ParsedRow struct {
	Row     int
	Product *model.Product
}

// ParseRow builds a product draft from one data row. Headers must already be
// canonical (see NormalizeHeaders). Returns nil when the row carries no
// product name; such rows cannot be matched or inserted.
//
// Numeric cells use invariant formatting (dot decimal separator); cells that
// fail to parse leave the field at its zero value rather than failing the
// row.
func ParseRow(fields []string, values []string) *model.Product {
	draft := &model.Product{}
	descRank := descRankNone

	for i, field := range fields {
		if i >= len(values) {
			break
		}
		value := strings.TrimSpace(values[i])
		if value == "" {
			continue
		}

		if prefix, index, ok := splitFamily(field); ok {
			setFamilySlot(draft, prefix, index, value)
			continue
		}

		switch field {
		case FieldID:
			if id, err := strconv.ParseInt(value, 10, 64); err == nil && id > 0 {
				draft.ID = id
			}
		case FieldName:
			draft.Name = value
		case FieldBrand:
			draft.Brand = value
		case FieldCategory:
			draft.CategoryName = value
		case FieldSKU:
			draft.SKU = value

		case FieldDescHTML:
			draft.Description = value
			descRank = descRankHTML
		case FieldDescPlain:
			if descRank < descRankPlain {
				draft.Description = value
				descRank = descRankPlain
			}
		case FieldDescription:
			if descRank < descRankGeneric {
				draft.Description = value
				descRank = descRankGeneric
			}
		case FieldFeatures:
			draft.Features = value
		case FieldNotes:
			draft.Notes = value

		case FieldWeight:
			draft.Weight = parseDecimal(value)
		case FieldDesi:
			draft.Desi = parseDecimal(value)
		case FieldWidth:
			draft.Width = parseDecimal(value)
		case FieldHeight:
			draft.Height = parseDecimal(value)
		case FieldDepth:
			draft.Depth = parseDecimal(value)
		case FieldLength:
			draft.Length = parseDecimal(value)
		case FieldWarranty:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				draft.WarrantyMonths = n
			}
		case FieldMaterial:
			draft.Material = value
		case FieldColor:
			draft.Color = value

		case FieldTrendyolBarcode:
			draft.TrendyolBarcode = value
		case FieldHepsiburadaBarcode:
			draft.HepsiburadaBarcode = value
		case FieldHepsiburadaSellerStockCode:
			draft.HepsiburadaSellerStockCode = value
		case FieldHepsiburadaSupplyBarcode:
			draft.HepsiburadaSupplyBarcode = value
		case FieldKoctasBarcode:
			draft.KoctasBarcode = value
		case FieldKoctasIstanbulBarcode:
			draft.KoctasIstanbulBarcode = value
		case FieldKoctasEANBarcode:
			draft.KoctasEANBarcode = value
		case FieldKoctasEANIstanbulBarcode:
			draft.KoctasEANIstanbulBarcode = value
		case FieldPttAvmBarcode:
			draft.PttAvmBarcode = value
		case FieldPttProductCode:
			draft.PttProductCode = value
		case FieldPazaramaBarcode:
			draft.PazaramaBarcode = value
		case FieldHaceyapiBarcode:
			draft.HaceyapiBarcode = value
		case FieldAmazonBarcode:
			draft.AmazonBarcode = value
		case FieldN11CatalogID:
			draft.N11CatalogID = value
		case FieldN11ProductCode:
			draft.N11ProductCode = value
		case FieldExternalBarcode:
			draft.ExternalBarcode = value
		case FieldExternalProductCode:
			draft.ExternalProductCode = value
		case FieldExternalProductID:
			draft.ExternalProductID = value

		case FieldArchived:
			draft.Archived = isTruthy(value)
		case FieldActive:
			// An "active" column is the inverse view of the archive flag.
			draft.Archived = !isTruthy(value)
		}
	}

	if draft.Name == "" {
		return nil
	}

	draft.PrimaryImage = model.FirstNonEmpty(draft.Images)
	return draft
}

func setFamilySlot(draft *model.Product, prefix string, index int, value string) {
	switch prefix {
	case familySpareBarcode:
		switch index {
		case 1:
			draft.SpareBarcode1 = value
		case 2:
			draft.SpareBarcode2 = value
		case 3:
			draft.SpareBarcode3 = value
		case 4:
			draft.SpareBarcode4 = value
		}
	case familyLogoBarcode:
		setSlot(&draft.LogoBarcodes, index, value, model.MaxLogoBarcodes)
	case familyMarketplaceImage:
		setSlot(&draft.MarketplaceImages, index, value, model.MaxMarketplaceImages)
	case familyImage:
		setSlot(&draft.Images, index, value, model.MaxImages)
	case familyVideo:
		setSlot(&draft.Videos, index, value, model.MaxVideos)
	}
}

// setSlot writes a 1-based slot, growing the list with empty padding so
// earlier unset slots keep their positions. Out-of-range slots are dropped.
func setSlot(list *[]string, index int, value string, max int) {
	if index < 1 || index > max {
		return
	}
	for len(*list) < index {
		*list = append(*list, "")
	}
	(*list)[index-1] = value
}

func parseDecimal(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseTable parses all data rows against an already-normalized header row.
// Rows without a name are counted as skipped; fully blank rows (common as
// spreadsheet padding) are ignored outright.
func ParseTable(fields []string, rows [][]string) (parsed []ParsedRow, skipped int) {
	parsed = make([]ParsedRow, 0, len(rows))
	for i, values := range rows {
		if isBlankRow(values) {
			continue
		}

		product := ParseRow(fields, values)
		if product == nil {
			skipped++
			continue
		}
		parsed = append(parsed, ParsedRow{Row: i + 1, Product: product})
	}
	return parsed, skipped
}

func isBlankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Pair is a header/value cell from a record-shaped payload (XML child
// elements, JSON object properties). ParsePairs funnels those through the
// same normalize-then-parse pipeline as the tabular formats.
type Pair struct {
	Header string
	Value  string
}

// ParsePairs parses record-shaped rows. Each record carries its own headers,
// so normalization runs per record rather than once per file.
func ParsePairs(records [][]Pair) (parsed []ParsedRow, skipped int) {
	parsed = make([]ParsedRow, 0, len(records))
	for i, record := range records {
		fields := make([]string, len(record))
		values := make([]string, len(record))
		for j, pair := range record {
			fields[j] = NormalizeHeader(pair.Header)
			values[j] = pair.Value
		}

		product := ParseRow(fields, values)
		if product == nil {
			skipped++
			continue
		}
		parsed = append(parsed, ParsedRow{Row: i + 1, Product: product})
	}
	return parsed, skipped
}
