// Package models defines the raw input rows read from the source workbook
// and the canonical output record written to the constituents export.
package models

import "time"

// ConstituentType identifies whether a record represents an individual or
// an organization.
type ConstituentType string

// Allowed constituent types.
const (
	TypePerson  ConstituentType = "Person"
	TypeCompany ConstituentType = "Company"
)

// RawConstituent is one profile row from the constituents sheet.
// MaritalStatus is read from the source column labeled "Gender", which in
// practice carries marital-status values; the field is named for what the
// data actually is.
type RawConstituent struct {
	PatronID      string
	FirstName     string
	LastName      string
	CompanyName   string
	Salutation    string
	MaritalStatus string
	JobTitle      string
	DateEntered   time.Time
	HasEntered    bool
}

// CanonicalConstituent is the normalized output unit, one per input
// constituent.
type CanonicalConstituent struct {
	PatronID       string
	Type           ConstituentType
	FirstName      string
	LastName       string
	Title          string
	CompanyName    string
	Email1         string
	Email2         string
	BackgroundInfo string
	CreatedAt      string
	Donations      DonationSummary
	Tags           []string
}
