package normalizer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cueimport/internal/models"
)

func donation(amount string, date string) models.RawDonation {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}

	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}

	return models.RawDonation{PatronID: "P1", Amount: d, Date: t}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "$0.00"},
		{"10", "$10.00"},
		{"13.5", "$13.50"},
		{"999.99", "$999.99"},
		{"1000", "$1,000.00"},
		{"13100", "$13,100.00"},
		{"1234567.89", "$1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, _ := decimal.NewFromString(tt.amount)
			if got := FormatCurrency(d); got != tt.want {
				t.Errorf("FormatCurrency(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestAggregateDonations(t *testing.T) {
	t.Run("lifetime total and last gift", func(t *testing.T) {
		sum := AggregateDonations([]models.RawDonation{
			donation("100", "2021-01-01"),
			donation("13000", "2022-04-19"),
		})

		if sum.Lifetime != "$13,100.00" {
			t.Errorf("Lifetime = %q, want $13,100.00", sum.Lifetime)
		}

		if sum.LastGiftAmount != "$13,000.00" {
			t.Errorf("LastGiftAmount = %q, want $13,000.00", sum.LastGiftAmount)
		}

		if sum.LastGiftDate != "2022-04-19 00:00:00" {
			t.Errorf("LastGiftDate = %q, want 2022-04-19 00:00:00", sum.LastGiftDate)
		}

		if sum.GiftCount != 2 {
			t.Errorf("GiftCount = %d, want 2", sum.GiftCount)
		}
	})

	t.Run("last gift ignores input order", func(t *testing.T) {
		sum := AggregateDonations([]models.RawDonation{
			donation("13000", "2022-04-19"),
			donation("100", "2021-01-01"),
		})

		if sum.LastGiftAmount != "$13,000.00" {
			t.Errorf("LastGiftAmount = %q, want $13,000.00", sum.LastGiftAmount)
		}
	})

	t.Run("date ties break toward the later row", func(t *testing.T) {
		sum := AggregateDonations([]models.RawDonation{
			donation("50", "2022-04-19"),
			donation("75", "2022-04-19"),
		})

		if sum.LastGiftAmount != "$75.00" {
			t.Errorf("LastGiftAmount = %q, want $75.00", sum.LastGiftAmount)
		}
	})

	t.Run("empty input yields absent fields", func(t *testing.T) {
		sum := AggregateDonations(nil)

		if sum.Lifetime != "" || sum.LastGiftAmount != "" || sum.LastGiftDate != "" {
			t.Errorf("empty input should yield empty strings, got %+v", sum)
		}

		if sum.GiftCount != 0 || sum.HasGifts() {
			t.Errorf("GiftCount = %d, want 0", sum.GiftCount)
		}
	})

	t.Run("a real zero gift is not absent", func(t *testing.T) {
		sum := AggregateDonations([]models.RawDonation{donation("0", "2021-06-01")})

		if sum.Lifetime != "$0.00" {
			t.Errorf("Lifetime = %q, want $0.00", sum.Lifetime)
		}

		if !sum.HasGifts() {
			t.Error("HasGifts() = false for a recorded $0.00 gift")
		}
	})
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2020, 1, 19, 13, 45, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "2020-01-19 13:45:00" {
		t.Errorf("FormatTimestamp = %q, want 2020-01-19 13:45:00", got)
	}
}
