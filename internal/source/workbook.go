// Package source reads the input workbook and yields typed raw rows. It is
// the ingestion boundary: column naming quirks of the source (notably the
// "Gender" column that actually carries marital status) are absorbed here
// so downstream logic only sees semantically named fields.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"cueimport/internal/config"
	"cueimport/internal/logger"
	"cueimport/internal/models"
)

// Structural input errors. Any of these aborts the batch with no output,
// since the row-count invariant cannot be guaranteed on a partial read.
var (
	ErrMissingSheet   = errors.New("required sheet not found in workbook")
	ErrMissingColumn  = errors.New("required column not found in sheet")
	ErrEmptySheet     = errors.New("sheet has no data rows")
	ErrDuplicateID    = errors.New("duplicate patron ID in constituents sheet")
	ErrMissingID      = errors.New("row is missing a patron ID")
	ErrInvalidAmount  = errors.New("donation amount is not a number")
	ErrUnparsableDate = errors.New("donation date is not in a recognized format")
)

// Source column headers.
const (
	colPatronID    = "Patron ID"
	colFirstName   = "First Name"
	colLastName    = "Last Name"
	colCompany     = "Company"
	colSalutation  = "Salutation"
	colGender      = "Gender" // actually marital status; see package doc
	colJobTitle    = "Title"
	colDateEntered = "Date Entered"
	colTags        = "Tags"
	colEmail       = "Email"
	colEmailType   = "Type"
	colAmount      = "Donation Amount"
	colDate        = "Donation Date"
	colTagLabel    = "Tag"
)

// Reader loads a workbook into a typed Dataset.
type Reader struct {
	input  config.InputConfig
	logger *logger.Logger
}

// NewReader creates a reader for the configured workbook and sheet names.
func NewReader(input config.InputConfig, log *logger.Logger) *Reader {
	return &Reader{input: input, logger: log}
}

// Read opens the workbook and parses the configured sheets into a Dataset.
// Tags come from the dedicated tags sheet when configured, otherwise from
// the comma-separated Tags column on the constituents sheet.
func (r *Reader) Read() (*models.Dataset, error) {
	wb, err := excelize.OpenFile(r.input.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", r.input.File, err)
	}

	defer func() {
		if closeErr := wb.Close(); closeErr != nil {
			r.logger.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	ds := &models.Dataset{}

	if err := r.readConstituents(wb, ds); err != nil {
		return nil, err
	}

	if err := r.readEmails(wb, ds); err != nil {
		return nil, err
	}

	if err := r.readDonations(wb, ds); err != nil {
		return nil, err
	}

	if r.input.Sheets.Tags != "" {
		if err := r.readTagsSheet(wb, ds); err != nil {
			return nil, err
		}
	}

	r.logger.Info("workbook loaded",
		"constituents", len(ds.Constituents),
		"emails", len(ds.Emails),
		"donations", len(ds.Donations),
		"tags", len(ds.Tags),
	)

	return ds, nil
}

func (r *Reader) readConstituents(wb *excelize.File, ds *models.Dataset) error {
	tbl, err := loadTable(wb, r.input.Sheets.Constituents, []string{colPatronID, colFirstName, colLastName, colCompany})
	if err != nil {
		return err
	}

	tagsInline := r.input.Sheets.Tags == ""
	seen := make(map[string]struct{}, len(tbl.rows))

	for i, row := range tbl.rows {
		id := tbl.get(row, colPatronID)
		if id == "" {
			return fmt.Errorf("%w: sheet %q row %d", ErrMissingID, r.input.Sheets.Constituents, i+2)
		}

		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}

		seen[id] = struct{}{}

		raw := models.RawConstituent{
			PatronID:      id,
			FirstName:     tbl.get(row, colFirstName),
			LastName:      tbl.get(row, colLastName),
			CompanyName:   tbl.get(row, colCompany),
			Salutation:    tbl.get(row, colSalutation),
			MaritalStatus: tbl.get(row, colGender),
			JobTitle:      tbl.get(row, colJobTitle),
		}

		if entered := tbl.get(row, colDateEntered); entered != "" {
			if t, ok := parseDate(entered); ok {
				raw.DateEntered = t
				raw.HasEntered = true
			} else {
				r.logger.Warn("unparsable Date Entered, leaving blank", "patron_id", id, "value", entered)
			}
		}

		ds.Constituents = append(ds.Constituents, raw)

		if tagsInline {
			for _, label := range strings.Split(tbl.get(row, colTags), ",") {
				if label = strings.TrimSpace(label); label != "" {
					ds.Tags = append(ds.Tags, models.RawTag{PatronID: id, Label: label})
				}
			}
		}
	}

	return nil
}

func (r *Reader) readEmails(wb *excelize.File, ds *models.Dataset) error {
	tbl, err := loadTable(wb, r.input.Sheets.Emails, []string{colPatronID, colEmail})
	if err != nil {
		return err
	}

	for i, row := range tbl.rows {
		id := tbl.get(row, colPatronID)
		if id == "" {
			return fmt.Errorf("%w: sheet %q row %d", ErrMissingID, r.input.Sheets.Emails, i+2)
		}

		// Without a Type column every address is primary; slot order
		// then follows the sheet order.
		slot := models.SlotPrimary
		if kind := tbl.get(row, colEmailType); kind != "" && !strings.EqualFold(kind, "primary") {
			slot = models.SlotOther
		}

		ds.Emails = append(ds.Emails, models.RawEmail{
			PatronID: id,
			Address:  tbl.get(row, colEmail),
			Slot:     slot,
		})
	}

	return nil
}

func (r *Reader) readDonations(wb *excelize.File, ds *models.Dataset) error {
	tbl, err := loadTable(wb, r.input.Sheets.Donations, []string{colPatronID, colAmount, colDate})
	if err != nil {
		return err
	}

	for i, row := range tbl.rows {
		id := tbl.get(row, colPatronID)
		if id == "" {
			return fmt.Errorf("%w: sheet %q row %d", ErrMissingID, r.input.Sheets.Donations, i+2)
		}

		amount, err := parseAmount(tbl.get(row, colAmount))
		if err != nil {
			return fmt.Errorf("%w: sheet %q row %d: %v", ErrInvalidAmount, r.input.Sheets.Donations, i+2, err)
		}

		dateStr := tbl.get(row, colDate)

		date, ok := parseDate(dateStr)
		if !ok {
			return fmt.Errorf("%w: sheet %q row %d: %q", ErrUnparsableDate, r.input.Sheets.Donations, i+2, dateStr)
		}

		ds.Donations = append(ds.Donations, models.RawDonation{PatronID: id, Amount: amount, Date: date})
	}

	return nil
}

func (r *Reader) readTagsSheet(wb *excelize.File, ds *models.Dataset) error {
	tbl, err := loadTable(wb, r.input.Sheets.Tags, []string{colPatronID, colTagLabel})
	if err != nil {
		return err
	}

	for i, row := range tbl.rows {
		id := tbl.get(row, colPatronID)
		if id == "" {
			return fmt.Errorf("%w: sheet %q row %d", ErrMissingID, r.input.Sheets.Tags, i+2)
		}

		if label := tbl.get(row, colTagLabel); label != "" {
			ds.Tags = append(ds.Tags, models.RawTag{PatronID: id, Label: label})
		}
	}

	return nil
}

// table is one sheet split into a header index and data rows.
type table struct {
	header map[string]int
	rows   [][]string
}

// get returns the trimmed cell under the named column, or "" when the row
// is ragged (trailing empty cells are omitted by the xlsx reader).
func (t *table) get(row []string, column string) string {
	idx, ok := t.header[column]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func loadTable(wb *excelize.File, sheet string, required []string) (*table, error) {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingSheet, sheet)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheet)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	for _, col := range required {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("%w: %q in sheet %q", ErrMissingColumn, col, sheet)
		}
	}

	return &table{header: header, rows: rows[1:]}, nil
}
