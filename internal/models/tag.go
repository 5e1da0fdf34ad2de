package models

// RawTag is one free-text tag label attached to a constituent. Duplicates
// within a constituent are possible before mapping.
type RawTag struct {
	PatronID string
	Label    string
}

// TagCount is one row of the tag-summary export: a canonical tag and the
// number of constituents carrying it.
type TagCount struct {
	Name  string
	Count int
}
