package campaign

import (
	"fmt"
	"strings"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// SkeletonCount is the number of placeholder cards clients render while the
// catalog loads.
const SkeletonCount = 6

var categories = []string{
	CategoryAll,
	"Fashion",
	"Beauty",
	"Technology",
	"Home",
	"Food",
	"Health",
	"Other",
}

func Categories() []string {
	return append([]string(nil), categories...)
}

// NormalizeCategory returns the canonical category name, or "" when the
// filter is disabled.
func NormalizeCategory(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, CategoryAll) {
		return "", nil
	}
	for _, item := range categories[1:] {
		if strings.EqualFold(item, value) {
			return item, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}
