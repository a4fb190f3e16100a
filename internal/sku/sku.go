// Package sku derives product codes from a product name and type.
package sku

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/kitchenchain/franchise-api/internal/domain/model"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidProductType = errors.New("sku: invalid product_type")
	ErrEmptyName          = errors.New("sku: name has no letters or digits")
)

var prefixes = map[model.ProductType]string{
	model.ProductTypeRawMaterial: "RAW",
	model.ProductTypeFinished:    "FIN",
}

var (
	notAlnumOrSpace = regexp.MustCompile(`[^A-Z0-9 ]`)
	spaceRun        = regexp.MustCompile(`\s+`)

	// đ has no canonical decomposition, so it is mapped by hand
	dStroke = strings.NewReplacer("đ", "d", "Đ", "D")
)

// Generate returns PREFIX-NAME-CODE, e.g. "Bột mì số 8" + RAW_MATERIAL
// gives RAW-BOT-MI-SO-8. The same input always yields the same SKU;
// uniqueness is left to the products.sku unique index.
func Generate(name string, productType model.ProductType) (string, error) {
	prefix, ok := prefixes[productType]
	if !ok {
		return "", ErrInvalidProductType
	}

	code := Slugify(name)
	if code == "" {
		return "", ErrEmptyName
	}
	return prefix + "-" + code, nil
}

// Slugify folds diacritics, upper-cases, drops everything but A-Z, 0-9 and
// spaces, and joins the remaining words with hyphens.
func Slugify(s string) string {
	s = strings.ToUpper(foldDiacritics(s))
	s = notAlnumOrSpace.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return spaceRun.ReplaceAllString(s, "-")
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return dStroke.Replace(out)
}
