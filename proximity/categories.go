package proximity

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnknownCategory is returned by LookupClassification for categories the
// engine has no classification metadata for. Callers must treat it as a
// valid, non-fatal outcome: unknown categories still get their own group.
var ErrUnknownCategory = errors.New("unknown category")

// Category classifications used by the legend generator and exporters.
const (
	ClassEducation  = "education"
	ClassHealth     = "health"
	ClassShopping   = "shopping"
	ClassGastronomy = "gastronomy"
	ClassLeisure    = "leisure"
	ClassTransit    = "transit"
	ClassServices   = "services"
	ClassCurated    = "curated"
)

var classifications = map[string]string{
	"kindergarten":   ClassEducation,
	"school":         ClassEducation,
	"university":     ClassEducation,
	"library":        ClassEducation,
	"doctor":         ClassHealth,
	"dentist":        ClassHealth,
	"pharmacy":       ClassHealth,
	"hospital":       ClassHealth,
	"supermarket":    ClassShopping,
	"bakery":         ClassShopping,
	"shoppingCenter": ClassShopping,
	"restaurant":     ClassGastronomy,
	"cafe":           ClassGastronomy,
	"bar":            ClassGastronomy,
	"park":           ClassLeisure,
	"playground":     ClassLeisure,
	"sportsFacility": ClassLeisure,
	"fitnessStudio":  ClassLeisure,
	"busStop":        ClassTransit,
	"tramStop":       ClassTransit,
	"trainStation":   ClassTransit,
	"airport":        ClassTransit,
	"chargingPoint":  ClassTransit,
	"atm":            ClassServices,
	"bank":           ClassServices,
	"postOffice":     ClassServices,

	"preferredLocation": ClassCurated,
	"realEstateListing": ClassCurated,
}

var titles = map[string]string{
	"preferredLocation": "Preferred Locations",
	"realEstateListing": "Real Estate Listings",
	"atm":               "ATM",
}

// LookupClassification returns the classification for a category name, or
// ErrUnknownCategory when none is known.
func LookupClassification(category string) (string, error) {
	cls, ok := classifications[category]
	if !ok {
		return "", ErrUnknownCategory
	}

	return cls, nil
}

// TitleForCategory returns the display title of a category. Categories
// without an explicit title fall back to the title-cased camelCase name, so
// an unrecognized category still renders something readable.
func TitleForCategory(category string) string {
	if title, ok := titles[category]; ok {
		return title
	}

	return splitCamelCase(category)
}

func splitCamelCase(s string) string {
	var b strings.Builder

	for i, r := range s {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}

		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}

		b.WriteRune(r)
	}

	return b.String()
}
