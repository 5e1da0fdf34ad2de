// Package export renders the canonical records and the tag summary as the
// two CSV files the donor-management platform imports.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cueimport/internal/models"
)

// constituentHeader is the column set of the constituents export, in the
// order the importer expects.
var constituentHeader = []string{
	"CB Constituent ID",
	"CB Constituent Type",
	"CB First Name",
	"CB Last Name",
	"CB Company Name",
	"CB Created At",
	"CB Email 1 (Standardized)",
	"CB Email 2 (Standardized)",
	"CB Title",
	"CB Tags",
	"CB Background Information",
	"CB Lifetime Donation Amount",
	"CB Most Recent Donation Date",
	"CB Most Recent Donation Amount",
}

var tagHeader = []string{"CB Tag Name", "CB Tag Count"}

// WriteConstituents writes the constituents export: one row per canonical
// record, in input order. Tags are a single comma-joined column ("A, B").
func WriteConstituents(path string, records []models.CanonicalConstituent) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, constituentHeader)

	for _, rec := range records {
		rows = append(rows, []string{
			rec.PatronID,
			string(rec.Type),
			rec.FirstName,
			rec.LastName,
			rec.CompanyName,
			rec.CreatedAt,
			rec.Email1,
			rec.Email2,
			rec.Title,
			strings.Join(rec.Tags, ", "),
			rec.BackgroundInfo,
			rec.Donations.Lifetime,
			rec.Donations.LastGiftDate,
			rec.Donations.LastGiftAmount,
		})
	}

	return writeCSV(path, rows)
}

// WriteTagCounts writes the tag-summary export: one row per distinct
// canonical tag, sorted by label (the counter emits them sorted).
func WriteTagCounts(path string, counts []models.TagCount) error {
	rows := make([][]string, 0, len(counts)+1)
	rows = append(rows, tagHeader)

	for _, tc := range counts {
		rows = append(rows, []string{tc.Name, strconv.Itoa(tc.Count)})
	}

	return writeCSV(path, rows)
}

// writeCSV writes rows through a temp file and renames it into place, so a
// failed run never leaves a partial export behind.
func writeCSV(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write CSV rows: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to move export into place: %w", err)
	}

	return nil
}
