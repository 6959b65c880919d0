package importer

import (
	"fmt"
	"strings"
	"unicode"

	"catalog-backend/internal/shared/utils"
)

// NormalizeHeader maps a raw column header to its canonical field id.
// Recognition is insensitive to case, whitespace, punctuation and Turkish
// diacritics: "Ürün Adı", "urun_adi" and "Name" all resolve to "name".
// Canonical ids normalize to themselves. Unrecognized headers return their
// normalized key unchanged so callers can report them.
func NormalizeHeader(raw string) string {
	key := normalizeKey(raw)
	if canonical, ok := headerTable[key]; ok {
		return canonical
	}
	return key
}

// NormalizeHeaders maps a full header row and returns the unrecognized
// normalized keys alongside.
func NormalizeHeaders(raw []string) (fields []string, unknown []string) {
	fields = make([]string, len(raw))
	for i, header := range raw {
		fields[i] = NormalizeHeader(header)
		if fields[i] != "" && !IsCanonical(fields[i]) {
			unknown = append(unknown, fields[i])
		}
	}
	return fields, unknown
}

// normalizeKey folds Turkish characters, lowercases and strips everything
// that is not a letter or digit. "Açıklama (HTML)" -> "aciklamahtml"
func normalizeKey(raw string) string {
	folded := strings.ToLower(utils.FoldTurkish(raw))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// headerTable maps normalized header keys to canonical field ids. Built once
// at package init; lookups never mutate it.
var headerTable = buildHeaderTable()

func buildHeaderTable() map[string]string {
	aliases := map[string][]string{
		FieldID:          {"id", "no", "urunid", "productid", "urunno"},
		FieldName:        {"name", "urunadi", "urunad", "ad", "isim", "productname", "title", "baslik"},
		FieldBrand:       {"brand", "marka"},
		FieldCategory:    {"category", "categoryname", "kategori", "kategoriadi"},
		FieldSKU:         {"sku", "stokkodu", "stockcode", "urunkodu"},
		FieldDescription: {"description", "aciklama", "urunaciklamasi"},
		FieldDescHTML:    {"descriptionhtml", "htmldescription", "aciklamahtml", "htmlaciklama"},
		FieldDescPlain:   {"descriptionplain", "descriptionplaintext", "plaintextdescription", "aciklamaduzmetin", "duzmetinaciklama"},
		FieldFeatures:    {"features", "ozellikler", "urunozellikleri"},
		FieldNotes:       {"notes", "notlar", "not"},

		FieldWeight:   {"weight", "weightkg", "agirlik", "agirlikkg", "kg"},
		FieldDesi:     {"desi"},
		FieldWidth:    {"width", "en", "genislik"},
		FieldHeight:   {"height", "boy", "yukseklik"},
		FieldDepth:    {"depth", "derinlik"},
		FieldLength:   {"length", "uzunluk"},
		FieldWarranty: {"warranty", "warrantymonths", "garanti", "garantisuresi", "garantisuresiay", "garantiay"},
		FieldMaterial: {"material", "malzeme", "materyal"},
		FieldColor:    {"color", "colour", "renk"},

		FieldTrendyolBarcode:            {"trendyolbarcode", "trendyolbarkod", "trendyolbarkodu", "trendyol"},
		FieldHepsiburadaBarcode:         {"hepsiburadabarcode", "hepsiburadabarkod", "hepsiburadabarkodu", "hepsiburada", "hbbarkod"},
		FieldHepsiburadaSellerStockCode: {"hepsiburadasellerstockcode", "hepsiburadasaticistokkodu", "hbsaticistokkodu"},
		FieldHepsiburadaSupplyBarcode:   {"hepsiburadasupplybarcode", "hepsiburadatedarikbarkodu", "hbtedarikbarkodu"},
		FieldKoctasBarcode:              {"koctasbarcode", "koctasbarkod", "koctasbarkodu", "koctas"},
		FieldKoctasIstanbulBarcode:      {"koctasistanbulbarcode", "koctasistanbulbarkod", "koctasistanbulbarkodu"},
		FieldKoctasEANBarcode:           {"koctaseanbarcode", "koctasean", "koctaseanbarkodu"},
		FieldKoctasEANIstanbulBarcode:   {"koctaseanistanbulbarcode", "koctaseanistanbul", "koctaseanistanbulbarkodu"},
		FieldPttAvmBarcode:              {"pttavmbarcode", "pttavmbarkod", "pttavmbarkodu", "pttavm"},
		FieldPttProductCode:             {"pttproductcode", "ptturunkodu", "pttavmurunkodu", "pttstokkodu"},
		FieldPazaramaBarcode:            {"pazaramabarcode", "pazaramabarkod", "pazaramabarkodu", "pazarama"},
		FieldHaceyapiBarcode:            {"haceyapibarcode", "haceyapibarkod", "haceyapibarkodu", "haceyapi"},
		FieldAmazonBarcode:              {"amazonbarcode", "amazonbarkod", "amazonbarkodu", "amazon", "asin"},
		FieldN11CatalogID:               {"n11catalogid", "n11katalogid", "n11katalogno"},
		FieldN11ProductCode:             {"n11productcode", "n11urunkodu", "n11stokkodu"},
		FieldExternalBarcode:            {"externalbarcode", "entegrasyonbarkod", "entegrasyonbarkodu"},
		FieldExternalProductCode:        {"externalproductcode", "entegrasyonurunkodu"},
		FieldExternalProductID:          {"externalproductid", "entegrasyonurunid"},

		FieldArchived: {"archived", "arsiv", "arsivlendi", "arsivlenmis"},
		FieldActive:   {"active", "aktif", "aktifmi", "isactive"},

		FieldCreatedAt: {"createdat", "olusturulmatarihi", "olusturmatarihi"},
		FieldUpdatedAt: {"updatedat", "guncellenmetarihi", "guncellemetarihi"},
	}

	// Numbered families: every alias prefix expands into one entry per slot.
	families := []struct {
		canonical string
		limit     int
		prefixes  []string
	}{
		{familySpareBarcode, 4, []string{"sparebarcode", "yedekbarkod", "barkod", "barcode"}},
		{familyLogoBarcode, 10, []string{"logobarcode", "logobarkod", "logobarkodu"}},
		{familyMarketplaceImage, 10, []string{"marketplaceimage", "pazaryeriresim", "pazaryeriresmi", "pazaryerigorsel"}},
		{familyImage, 10, []string{"image", "productimage", "resim", "urunresim", "urunresmi", "gorsel", "urungorsel"}},
		{familyVideo, 5, []string{"video", "videourl", "urunvideo", "urunvideosu"}},
	}

	table := make(map[string]string, 512)
	for canonical, keys := range aliases {
		for _, key := range keys {
			table[key] = canonical
		}
	}
	for _, family := range families {
		for i := 1; i <= family.limit; i++ {
			canonical := fmt.Sprintf("%s%d", family.canonical, i)
			for _, prefix := range family.prefixes {
				table[fmt.Sprintf("%s%d", prefix, i)] = canonical
			}
		}
	}

	// Unnumbered single-image shorthand maps to the first slot.
	table["resim"] = "image1"
	table["image"] = "image1"
	table["gorsel"] = "image1"
	table["anaresim"] = "image1"
	table["mainimage"] = "image1"

	return table
}
