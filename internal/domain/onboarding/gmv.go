package onboarding

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	gmvMaxFractionDigits = 2
	// profiles.gmv is NUMERIC(14, 2).
	gmvMaxIntegerDigits = 12
)

// SanitizeGMV keeps digits and dots, drops everything after a second dot and
// truncates the fraction to two digits. "12345.678" becomes "12345.67".
func SanitizeGMV(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	parts := strings.Split(b.String(), ".")
	if len(parts) == 1 {
		return parts[0]
	}

	fraction := parts[1]
	if len(fraction) > gmvMaxFractionDigits {
		fraction = fraction[:gmvMaxFractionDigits]
	}
	return parts[0] + "." + fraction
}

// FormatGMV sanitizes raw input and renders it with en-US thousands
// separators and at most two fraction digits. Input without any digit
// formats to "".
func FormatGMV(raw string) string {
	sanitized := SanitizeGMV(raw)
	if strings.Trim(sanitized, ".") == "" {
		return ""
	}

	integer, fraction, _ := strings.Cut(sanitized, ".")
	integer = strings.TrimLeft(integer, "0")
	if integer == "" {
		integer = "0"
	}
	fraction = strings.TrimRight(fraction, "0")

	whole, ok := new(big.Int).SetString(integer, 10)
	if !ok {
		return ""
	}

	out := humanize.BigComma(whole)
	if fraction != "" {
		out += "." + fraction
	}
	return out
}

// GMVTooLarge reports whether the integer part of a formatted GMV has more
// digits than the profile column stores.
func GMVTooLarge(formatted string) bool {
	integer, _, _ := strings.Cut(strings.ReplaceAll(strings.TrimSpace(formatted), ",", ""), ".")
	return len(strings.TrimLeft(integer, "0")) > gmvMaxIntegerDigits
}

// ParseGMV converts a formatted GMV back to a number.
func ParseGMV(formatted string) (float64, error) {
	value := strings.ReplaceAll(strings.TrimSpace(formatted), ",", "")
	if value == "" {
		return 0, fmt.Errorf("gmv is empty")
	}
	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse gmv %q: %w", formatted, err)
	}
	if out < 0 {
		return 0, fmt.Errorf("gmv must be >= 0")
	}
	return out, nil
}
