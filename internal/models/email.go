package models

// EmailSlot marks which address slot an email row was sourced from.
type EmailSlot string

// Email slots. Primary-slot addresses take precedence when a constituent
// has more validated addresses than output slots.
const (
	SlotPrimary EmailSlot = "primary"
	SlotOther   EmailSlot = "other"
)

// RawEmail is one row from the emails sheet. Zero or more per constituent.
type RawEmail struct {
	PatronID string
	Address  string
	Slot     EmailSlot
}
