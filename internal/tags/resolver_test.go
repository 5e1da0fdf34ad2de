package tags

import (
	"reflect"
	"testing"

	"cueimport/internal/config"
)

func TestTableResolver_Resolve(t *testing.T) {
	r := NewTableResolver(config.FallbackTagTable())

	tests := []struct {
		raw  string
		want string
	}{
		{"Top Donor", "Major Donor"},
		{"Major Donor 2021", "Major Donor"},
		{"Summer School 2016", "Summer 2016"},
		{"Camp 2016", "Summer 2016"},
		{"Pitch Perfect Volunteer", "Pitch Perfect"},
		{"Pitch Perfect Staff", "Pitch Perfect"},
		{"Board Member", "Board Member"},
		{"Completely Unknown", "Completely Unknown"},
		{"top donor", "top donor"}, // lookup is case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := r.Resolve(tt.raw); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMapTags(t *testing.T) {
	r := NewTableResolver(config.FallbackTagTable())

	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{
			"two raws collapse onto one canonical",
			[]string{"Top Donor", "Major Donor 2021"},
			[]string{"Major Donor"},
		},
		{
			"literal duplicates collapse",
			[]string{"Board Member", "Board Member"},
			[]string{"Board Member"},
		},
		{
			"result is sorted ascending",
			[]string{"Summer School 2016", "Board Member", "Top Donor"},
			[]string{"Board Member", "Major Donor", "Summer 2016"},
		},
		{
			"unmapped tags pass through",
			[]string{"Volunteer 2023"},
			[]string{"Volunteer 2023"},
		},
		{
			"blank labels are skipped",
			[]string{"", "  ", "Board Member"},
			[]string{"Board Member"},
		},
		{
			"empty input",
			nil,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapTags(tt.labels, r)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapTags(%v) = %v, want %v", tt.labels, got, tt.want)
			}
		})
	}
}

func TestCounter(t *testing.T) {
	c := NewCounter()
	c.Add([]string{"Major Donor", "Board Member"})
	c.Add([]string{"Major Donor"})
	c.Add(nil)

	if c.Distinct() != 2 {
		t.Errorf("Distinct = %d, want 2", c.Distinct())
	}

	counts := c.Counts()
	if len(counts) != 2 {
		t.Fatalf("Counts rows = %d, want 2", len(counts))
	}

	// Sorted by name: Board Member before Major Donor.
	if counts[0].Name != "Board Member" || counts[0].Count != 1 {
		t.Errorf("counts[0] = %+v, want {Board Member 1}", counts[0])
	}

	if counts[1].Name != "Major Donor" || counts[1].Count != 2 {
		t.Errorf("counts[1] = %+v, want {Major Donor 2}", counts[1])
	}
}
