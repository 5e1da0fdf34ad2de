// Package report renders the end-of-run summary table printed after a
// successful batch.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const rule = "------------------------------------------------"

// Summary is a two-column table of labels and values, rendered with the
// label column padded to a shared width so values line up.
type Summary struct {
	title string
	rows  [][2]string
}

// NewSummary creates an empty summary with the given title.
func NewSummary(title string) *Summary {
	return &Summary{title: title}
}

// Add appends one label/value row.
func (s *Summary) Add(label, value string) *Summary {
	s.rows = append(s.rows, [2]string{label, value})

	return s
}

// Render returns the formatted table. Widths are measured with runewidth
// so labels containing wide runes still align.
func (s *Summary) Render() string {
	labelWidth := 0

	for _, row := range s.rows {
		if w := runewidth.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString(" " + s.title + "\n")
	b.WriteString(rule + "\n")

	for _, row := range s.rows {
		b.WriteString(" " + runewidth.FillRight(row[0], labelWidth) + "  " + row[1] + "\n")
	}

	b.WriteString(rule)

	return b.String()
}
