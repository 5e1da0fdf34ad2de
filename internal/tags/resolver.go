// Package tags resolves free-text tag labels onto the canonical taxonomy.
// The mapping table comes from a remote lookup service fetched once at
// startup, with an embedded static table as the unconditional fallback;
// both sit behind the same Resolver interface so per-record logic never
// special-cases the failure path.
package tags

import (
	"sort"
	"strings"
)

// Resolver maps one raw tag label onto its canonical label. Labels absent
// from the mapping pass through unchanged.
type Resolver interface {
	Resolve(raw string) string
}

// TableResolver resolves tags against an in-memory table. It backs both
// the remote-fetched and the static-fallback configurations.
type TableResolver struct {
	table map[string]string
}

// NewTableResolver creates a resolver over the given raw → canonical table.
func NewTableResolver(table map[string]string) *TableResolver {
	return &TableResolver{table: table}
}

// Resolve returns the canonical label for raw, or raw itself when the
// table has no entry. Lookup is case-sensitive, matching the contract of
// the mapping service.
func (r *TableResolver) Resolve(raw string) string {
	if mapped, ok := r.table[raw]; ok {
		return mapped
	}

	return raw
}

// Len returns the number of mappings in the table.
func (r *TableResolver) Len() int {
	return len(r.table)
}

// MapTags resolves a constituent's raw tags to canonical form, collapses
// duplicates (literal repeats and distinct raw tags mapping to the same
// canonical label), and returns the set sorted ascending in byte order.
// The case-sensitive sort is a documented choice; it keeps output stable
// and matches the upstream importer.
func MapTags(labels []string, resolver Resolver) []string {
	seen := make(map[string]struct{}, len(labels))

	var mapped []string

	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		canonical := resolver.Resolve(label)
		if _, dup := seen[canonical]; dup {
			continue
		}

		seen[canonical] = struct{}{}
		mapped = append(mapped, canonical)
	}

	sort.Strings(mapped)

	return mapped
}
