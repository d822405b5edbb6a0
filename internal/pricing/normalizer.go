// Package pricing normalizes the locale-formatted price strings the Steam
// market returns ("$1,234.56", "12,50€", "1 234,56 pуб.") into plain floats.
package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// nonNumeric matches everything that can't be part of a price literal.
var nonNumeric = regexp.MustCompile(`[^\d.,]`)

// Precision is the number of fractional digits kept on stored prices.
// Rounding at every update bounds drift across many small acquisitions.
const Precision = 6

// Normalize parses an arbitrary textual price into a float64.
//
// It is total: any input that can't be understood yields 0.0 rather than an
// error, so it is safe to call on whatever external text comes in. When both
// '.' and ',' appear the comma is assumed to be a thousands separator; a
// lone comma is treated as the decimal point.
func Normalize(raw string) float64 {
	if raw == "" {
		return 0.0
	}

	s := nonNumeric.ReplaceAllString(raw, "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ",", "")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}

	return Round(val)
}

// Round rounds a price to the storage precision.
func Round(val float64) float64 {
	return decimal.NewFromFloat(val).Round(Precision).InexactFloat64()
}
