package normalizer

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"cueimport/internal/models"
)

// timestampLayout is the output format for donation dates.
const timestampLayout = "2006-01-02 15:04:05"

// currencyPrinter is pinned to English so amounts render with comma
// thousands and a period decimal regardless of the host locale.
var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount as "$X,XXX.XX" with grouped thousands
// and exactly two decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return currencyPrinter.Sprintf("$%v", number.Decimal(
		amount.InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatTimestamp renders a donation date as "YYYY-MM-DD HH:MM:SS".
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// AggregateDonations reduces a constituent's donation rows to lifetime
// total, last gift, and gift count. The last gift is the row with the
// maximum date; ties break in favor of the later input row. An empty input
// yields an all-empty summary: absence of gifts is distinct from a
// recorded $0.00 gift.
func AggregateDonations(rows []models.RawDonation) models.DonationSummary {
	if len(rows) == 0 {
		return models.DonationSummary{}
	}

	lifetime := decimal.Zero
	last := rows[0]

	for _, row := range rows {
		lifetime = lifetime.Add(row.Amount)

		if !row.Date.Before(last.Date) {
			last = row
		}
	}

	return models.DonationSummary{
		Lifetime:       FormatCurrency(lifetime),
		LastGiftAmount: FormatCurrency(last.Amount),
		LastGiftDate:   FormatTimestamp(last.Date),
		GiftCount:      len(rows),
	}
}
