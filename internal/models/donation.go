package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawDonation is one row from the donation-history sheet.
type RawDonation struct {
	PatronID string
	Amount   decimal.Decimal
	Date     time.Time
}

// DonationSummary aggregates a constituent's donation history. All fields
// are empty (and GiftCount zero) for a constituent with no donations;
// absence is distinct from a recorded $0.00 gift.
type DonationSummary struct {
	Lifetime       string
	LastGiftAmount string
	LastGiftDate   string
	GiftCount      int
}

// HasGifts reports whether any donation rows were recorded.
func (d DonationSummary) HasGifts() bool {
	return d.GiftCount > 0
}
