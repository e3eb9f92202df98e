package booking

import "time"

// Booking represents a reservation of a room for a time slot.
type Booking struct {
	ID       int64
	RoomID   int64
	Start    time.Time
	Duration time.Duration
}

// Slot returns the half-open interval occupied by the booking.
func (b Booking) Slot() Slot {
	return Slot{Start: b.Start, Duration: b.Duration}
}

// End returns the exclusive end instant of the booking.
func (b Booking) End() time.Time {
	return b.Slot().End()
}

// DetectConflicts returns the existing bookings whose slot overlaps the
// candidate's in the same room. A booking never conflicts with itself, so
// entries sharing the candidate's non-zero ID are skipped; this lets update
// paths pass the full room listing without filtering first.
func DetectConflicts(existing []Booking, candidate Booking) []Booking {
	candidateSlot := candidate.Slot()
	if candidateSlot.Duration <= 0 {
		return nil
	}

	var conflicts []Booking
	for _, b := range existing {
		if b.RoomID != candidate.RoomID {
			continue
		}
		if candidate.ID != 0 && b.ID == candidate.ID {
			continue
		}
		if candidateSlot.Overlaps(b.Slot()) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
