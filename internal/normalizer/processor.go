package normalizer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cueimport/internal/config"
	"cueimport/internal/logger"
	"cueimport/internal/models"
	"cueimport/internal/tags"
)

// nameCaser title-cases person names ("jANE" → "Jane"), pinned to English.
var nameCaser = cases.Title(language.English)

// Result is the outcome of one batch run: the canonical records, the
// global tag counts, and data-quality counters for the summary report.
type Result struct {
	Constituents []models.CanonicalConstituent
	TagCounts    []models.TagCount
	Persons      int
	Companies    int
	Nameless     int
	Excluded     int
	DroppedEmail int
	OrphanRows   int
	Warnings     int
}

// Processor joins a constituent's raw rows and applies the normalization
// pipeline to produce one canonical record per input constituent.
type Processor struct {
	classifier *Classifier
	emails     *EmailValidator
	resolver   tags.Resolver
	rules      config.RulesConfig
	logger     *logger.Logger
}

// NewProcessor creates a processor from the configured rule tables and the
// startup-selected tag resolver.
func NewProcessor(cfg *config.Config, resolver tags.Resolver, log *logger.Logger) *Processor {
	return &Processor{
		classifier: NewClassifier(cfg.NonCompanySet()),
		emails:     NewEmailValidator(cfg.TypoDomainSet()),
		resolver:   resolver,
		rules:      cfg.Rules,
		logger:     log,
	}
}

// Process transforms the dataset into canonical records, preserving the
// constituents' input order. Per-record problems (invalid emails, no-name
// records, rows referencing unknown patron IDs) are recovered locally and
// surface only as warnings; Process itself cannot fail once the dataset
// has been read.
func (p *Processor) Process(ds *models.Dataset) *Result {
	result := &Result{Constituents: make([]models.CanonicalConstituent, 0, len(ds.Constituents))}

	known := make(map[string]struct{}, len(ds.Constituents))
	for _, c := range ds.Constituents {
		known[c.PatronID] = struct{}{}
	}

	emailsByPatron := make(map[string][]models.RawEmail, len(ds.Constituents))

	for _, e := range ds.Emails {
		if _, ok := known[e.PatronID]; !ok {
			p.warnOrphan(result, "email", e.PatronID)

			continue
		}

		emailsByPatron[e.PatronID] = append(emailsByPatron[e.PatronID], e)
	}

	donationsByPatron := make(map[string][]models.RawDonation, len(ds.Constituents))

	for _, d := range ds.Donations {
		if _, ok := known[d.PatronID]; !ok {
			p.warnOrphan(result, "donation", d.PatronID)

			continue
		}

		donationsByPatron[d.PatronID] = append(donationsByPatron[d.PatronID], d)
	}

	tagsByPatron := make(map[string][]string, len(ds.Constituents))

	for _, t := range ds.Tags {
		if _, ok := known[t.PatronID]; !ok {
			p.warnOrphan(result, "tag", t.PatronID)

			continue
		}

		tagsByPatron[t.PatronID] = append(tagsByPatron[t.PatronID], t.Label)
	}

	counter := tags.NewCounter()

	for _, raw := range ds.Constituents {
		record, keep := p.normalize(raw, emailsByPatron[raw.PatronID], donationsByPatron[raw.PatronID], tagsByPatron[raw.PatronID], result)
		if !keep {
			result.Excluded++

			continue
		}

		counter.Add(record.Tags)
		result.Constituents = append(result.Constituents, record)
	}

	result.TagCounts = counter.Counts()
	result.Warnings = result.Nameless + result.DroppedEmail + result.OrphanRows

	return result
}

// normalize builds one canonical record. The second return value is false
// only when the no-name policy excludes the record.
func (p *Processor) normalize(raw models.RawConstituent, emails []models.RawEmail, donations []models.RawDonation, rawTags []string, result *Result) (models.CanonicalConstituent, bool) {
	ctype := p.classifier.Classify(raw.FirstName, raw.LastName, raw.CompanyName)

	record := models.CanonicalConstituent{
		PatronID:  raw.PatronID,
		Type:      ctype,
		Title:     NormalizeTitle(raw.Salutation),
		Donations: AggregateDonations(donations),
		Tags:      tags.MapTags(rawTags, p.resolver),
	}

	if raw.HasEntered {
		record.CreatedAt = FormatTimestamp(raw.DateEntered)
	}

	if ctype == models.TypePerson {
		record.FirstName = nameCaser.String(strings.TrimSpace(raw.FirstName))
		record.LastName = nameCaser.String(strings.TrimSpace(raw.LastName))
		record.BackgroundInfo = ComposeBackground(raw.JobTitle, raw.MaritalStatus, ctype)
		result.Persons++
	} else {
		record.CompanyName = strings.TrimSpace(raw.CompanyName)
		result.Companies++
	}

	email1, email2, dropped := p.emails.SelectSlots(emails)
	record.Email1 = email1
	record.Email2 = email2

	if dropped > 0 {
		result.DroppedEmail += dropped
		p.logger.Debug("dropped invalid emails", "patron_id", raw.PatronID, "count", dropped)
	}

	if p.classifier.IsNameless(raw.FirstName, raw.LastName, raw.CompanyName) {
		result.Nameless++

		switch p.rules.NoNamePolicy {
		case config.NoNameExclude:
			p.logger.Warn("excluding constituent with no name data", "patron_id", raw.PatronID)

			if ctype == models.TypePerson {
				result.Persons--
			}

			return record, false
		case config.NoNamePlaceholder:
			record.LastName = p.rules.PlaceholderName
			p.logger.Warn("constituent has no name data, using placeholder", "patron_id", raw.PatronID)
		default:
			p.logger.Warn("constituent has no name data, flagged for review", "patron_id", raw.PatronID)
		}
	}

	return record, true
}

func (p *Processor) warnOrphan(result *Result, rowKind, patronID string) {
	result.OrphanRows++
	p.logger.Warn("row references unknown constituent", "row", rowKind, "patron_id", patronID)
}
