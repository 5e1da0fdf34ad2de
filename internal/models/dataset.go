package models

// Dataset holds all typed rows read from one source workbook, joined by
// patron ID downstream. Row order within each group is the source order,
// which the pipeline preserves (last-gift tie-breaking depends on it).
type Dataset struct {
	Constituents []RawConstituent
	Emails       []RawEmail
	Donations    []RawDonation
	Tags         []RawTag
}
