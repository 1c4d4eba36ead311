package models

import "time"

// Slot is a generated fixed-duration candidate appointment window with its
// computed availability. Serialized with ISO-8601 instants.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}

// SlotInterval returns the slot's half-open interval.
func (s Slot) SlotInterval() Interval {
	return Interval{Start: s.Start, End: s.End}
}
