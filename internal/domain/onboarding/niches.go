package onboarding

import "strings"

var niches = []string{
	"Nutrition",
	"Fitness",
	"Tech",
	"Reviews",
	"Personal Brand",
	"Beauty",
	"Fashion",
	"Gaming",
	"Education",
	"Entertainment",
	"Lifestyle",
	"Travel",
	"Business",
	"General",
}

// Niches returns the display names of the selectable account niches. Stored
// values are the lower-cased names.
func Niches() []string {
	return append([]string(nil), niches...)
}

func IsKnownNiche(value string) bool {
	value = strings.TrimSpace(value)
	for _, item := range niches {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

func normalizeNiche(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
