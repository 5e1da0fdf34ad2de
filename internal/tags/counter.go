package tags

import (
	"sort"

	"cueimport/internal/models"
)

// Counter accumulates canonical tag occurrences across the batch. It is an
// explicit accumulator owned by the orchestrator, not package-level state.
// Each canonical tag counts once per constituent, so callers must pass
// already-deduplicated tag sets.
type Counter struct {
	counts map[string]int
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add records one constituent's canonical tag set.
func (c *Counter) Add(canonicalTags []string) {
	for _, tag := range canonicalTags {
		c.counts[tag]++
	}
}

// Distinct returns the number of distinct canonical tags seen.
func (c *Counter) Distinct() int {
	return len(c.counts)
}

// Counts returns one row per distinct canonical tag, sorted ascending by
// label in byte order to match the per-constituent tag sort.
func (c *Counter) Counts() []models.TagCount {
	rows := make([]models.TagCount, 0, len(c.counts))
	for name, count := range c.counts {
		rows = append(rows, models.TagCount{Name: name, Count: count})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	return rows
}
