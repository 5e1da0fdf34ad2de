// Package normalizer contains the record normalization and classification
// pipeline: Person/Company classification, email validation, title and
// background normalization, donation aggregation, and the orchestrating
// Processor.
package normalizer

import (
	"strings"

	"cueimport/internal/models"
)

// Classifier decides whether a constituent is a Person or a Company. The
// note set holds company-field values that are really notes about an
// individual ("Retired", "...") rather than business names; membership is
// checked case-insensitively.
type Classifier struct {
	nonCompanyValues map[string]struct{}
}

// NewClassifier creates a classifier with the given note set. Keys must be
// lowercased by the caller (config.NonCompanySet does this).
func NewClassifier(nonCompanyValues map[string]struct{}) *Classifier {
	return &Classifier{nonCompanyValues: nonCompanyValues}
}

// Classify applies the type decision rules in order:
//  1. any first or last name → Person, regardless of the company field;
//  2. a company value outside the note set → Company;
//  3. otherwise Person with no name data (the caller flags this case).
func (c *Classifier) Classify(firstName, lastName, company string) models.ConstituentType {
	if strings.TrimSpace(firstName) != "" || strings.TrimSpace(lastName) != "" {
		return models.TypePerson
	}

	company = strings.TrimSpace(company)
	if company != "" {
		if _, isNote := c.nonCompanyValues[strings.ToLower(company)]; !isNote {
			return models.TypeCompany
		}
	}

	return models.TypePerson
}

// IsNameless reports whether a constituent carries no usable name data:
// blank first and last names, and a company field that is either blank or a
// note-set member. Such records classify as Person and are flagged for
// manual review.
func (c *Classifier) IsNameless(firstName, lastName, company string) bool {
	if strings.TrimSpace(firstName) != "" || strings.TrimSpace(lastName) != "" {
		return false
	}

	return c.Classify(firstName, lastName, company) == models.TypePerson
}
