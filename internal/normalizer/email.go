package normalizer

import (
	"errors"
	"regexp"
	"strings"

	"cueimport/internal/models"
)

// Email validation errors.
var (
	ErrEmailEmpty      = errors.New("email is empty")
	ErrEmailMalformed  = errors.New("email is malformed")
	ErrEmailBadDomain  = errors.New("email domain is malformed")
	ErrEmailTypoDomain = errors.New("email domain is a known typo")
)

// emailPattern is the coarse charset check applied after the structural
// checks pass.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// EmailValidator performs syntactic and typo-domain checks on raw email
// addresses. Typo domains are common misspellings of legitimate providers
// ("gmaill.com" for "gmail.com"); addresses on them are rejected, never
// repaired.
type EmailValidator struct {
	typoDomains map[string]struct{}
}

// NewEmailValidator creates a validator with the given typo-domain set.
// Keys must be lowercased by the caller (config.TypoDomainSet does this).
func NewEmailValidator(typoDomains map[string]struct{}) *EmailValidator {
	return &EmailValidator{typoDomains: typoDomains}
}

// Normalize validates a raw address and returns its normalized form:
// trimmed and lowercased. Every failed check is a hard rejection; the
// caller drops the address.
func (v *EmailValidator) Normalize(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrEmailEmpty
	}

	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || domain == "" || strings.Contains(domain, "@") {
		return "", ErrEmailMalformed
	}

	segments := strings.Split(domain, ".")
	if len(segments) < 2 {
		return "", ErrEmailBadDomain
	}

	for _, seg := range segments {
		if seg == "" {
			return "", ErrEmailBadDomain
		}
	}

	if !emailPattern.MatchString(email) {
		return "", ErrEmailMalformed
	}

	if _, ok := v.typoDomains[domain]; ok {
		return "", ErrEmailTypoDomain
	}

	return email, nil
}

// SelectSlots picks the two output addresses from a constituent's email
// rows. Primary-slot rows are considered first, then the rest in input
// order; the first valid address fills slot 1 and the next valid address
// distinct from it fills slot 2, so a duplicate pair deterministically
// keeps slot 1. Invalid rows are skipped and counted as dropped.
func (v *EmailValidator) SelectSlots(rows []models.RawEmail) (email1, email2 string, dropped int) {
	ordered := make([]models.RawEmail, 0, len(rows))
	for _, r := range rows {
		if r.Slot == models.SlotPrimary {
			ordered = append(ordered, r)
		}
	}

	for _, r := range rows {
		if r.Slot != models.SlotPrimary {
			ordered = append(ordered, r)
		}
	}

	for _, r := range ordered {
		email, err := v.Normalize(r.Address)
		if err != nil {
			dropped++

			continue
		}

		switch {
		case email1 == "":
			email1 = email
		case email2 == "" && email != email1:
			email2 = email
		}
	}

	return email1, email2, dropped
}
