package booking

import (
	"errors"
	"time"
)

// ErrInvalidDuration is returned when a slot is constructed with a non-positive duration.
var ErrInvalidDuration = errors.New("booking: duration must be positive")

// Slot represents a half-open time interval [Start, Start+Duration).
type Slot struct {
	Start    time.Time
	Duration time.Duration
}

// NewSlot constructs a slot from a start instant and a positive duration.
func NewSlot(start time.Time, duration time.Duration) (Slot, error) {
	if duration <= 0 {
		return Slot{}, ErrInvalidDuration
	}
	return Slot{Start: start, Duration: duration}, nil
}

// End returns the exclusive upper bound of the slot. It is always derived
// from Start and Duration and is never stored independently.
func (s Slot) End() time.Time {
	return s.Start.Add(s.Duration)
}

// Overlaps reports whether two slots intersect under half-open semantics:
// a slot ending exactly when another starts does not overlap it.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.Before(other.End()) && other.Start.Before(s.End())
}

// Contains reports whether the instant t falls inside the slot.
func (s Slot) Contains(t time.Time) bool {
	return !t.Before(s.Start) && t.Before(s.End())
}
