package normalizer

import (
	"strings"

	"cueimport/internal/models"
)

// MaritalStatus extracts a usable marital status from the source field.
// Only "Married" and "Single" pass through; "Unknown", blanks, and anything
// else mean no status is available.
func MaritalStatus(raw string) string {
	status := strings.TrimSpace(raw)
	if status == "Married" || status == "Single" {
		return status
	}

	return ""
}

// ComposeBackground builds the free-text Background Information field from
// a job title and marital status. Companies never carry background
// information. Field order is fixed (job title first) and the separator is
// "; " with no trailing punctuation:
//
//	"Job Title: Professor; Marital Status: Married"
//	"Job Title: Professor"
//	"Marital Status: Single"
//	""
func ComposeBackground(jobTitle, maritalStatus string, ctype models.ConstituentType) string {
	if ctype == models.TypeCompany {
		return ""
	}

	var parts []string

	if job := strings.TrimSpace(jobTitle); job != "" {
		parts = append(parts, "Job Title: "+job)
	}

	if status := MaritalStatus(maritalStatus); status != "" {
		parts = append(parts, "Marital Status: "+status)
	}

	return strings.Join(parts, "; ")
}
