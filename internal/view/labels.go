// Package view maps engine aggregates into the exact shapes dashboard
// callers consume. It formats labels and classifies statuses but never
// produces markup.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
)

// Ordinal renders n with its English ordinal suffix, honouring the 11-13
// exception (11th, not 11st).
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// FormatYearLabel turns a raw year value into a display label ("3" -> "3rd
// Year"). Values that do not normalize to a numeral pass through trimmed.
func FormatYearLabel(year string) string {
	normalized := correlate.NormalizeYear(year)
	if n, err := strconv.Atoi(normalized); err == nil && n > 0 {
		return Ordinal(n) + " Year"
	}
	return strings.TrimSpace(year)
}

// FormatSemesterLabel folds free-text semester values into their canonical
// display labels.
func FormatSemesterLabel(semester string) string {
	return correlate.NormalizeSemester(semester)
}

// FormatAverage renders a numeric average to two decimals.
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}
