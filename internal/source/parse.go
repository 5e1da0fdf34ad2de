package source

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are the formats the source workbook has been observed to
// carry, plus the styled-cell renderings excelize produces for native
// date cells.
var dateLayouts = []string{
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"01-02-06",
	"1/2/06 15:04",
}

// parseDate tries each known layout against the trimmed cell value.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount parses a donation amount cell, tolerating a currency sign
// and grouping commas ("$1,300.50").
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	return decimal.NewFromString(s)
}
