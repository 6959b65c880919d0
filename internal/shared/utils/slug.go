package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugMultiHyphen  = regexp.MustCompile(`-+`)
)

// GenerateSlug builds a URL-safe slug from a (possibly Turkish) name.
// "Banyo Aksesuarları" -> "banyo-aksesuarlari"
func GenerateSlug(input string) string {
	ascii := FoldTurkish(input)
	lower := strings.ToLower(ascii)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")
	normalized := slugMultiHyphen.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// turkishFold maps Turkish diacritics to their ASCII base characters.
// The dotless ı / dotted İ pair is the notable one: both fold to plain i.
var turkishFold = map[rune]rune{
	'ı': 'i', 'ğ': 'g', 'ü': 'u', 'ş': 's', 'ö': 'o', 'ç': 'c',
	'İ': 'I', 'Ğ': 'G', 'Ü': 'U', 'Ş': 'S', 'Ö': 'O', 'Ç': 'C',
	'â': 'a', 'î': 'i', 'û': 'u',
	'Â': 'A', 'Î': 'I', 'Û': 'U',
}

// FoldTurkish replaces Turkish characters with ASCII equivalents.
// Non-Turkish runes pass through unchanged.
func FoldTurkish(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		if replacement, ok := turkishFold[r]; ok {
			result = append(result, replacement)
		} else {
			result = append(result, r)
		}
	}
	return string(result)
}
