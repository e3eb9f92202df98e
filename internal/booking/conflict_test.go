package booking

import (
	"testing"
	"time"
)

func TestDetectConflicts(t *testing.T) {
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	at := func(hour float64) time.Time {
		return day.Add(time.Duration(hour * float64(time.Hour)))
	}

	existing := []Booking{
		{ID: 1, RoomID: 1, Start: at(10), Duration: time.Hour},
		{ID: 2, RoomID: 2, Start: at(10), Duration: 2 * time.Hour},
	}

	t.Run("overlapping request in same room conflicts", func(t *testing.T) {
		conflicts := DetectConflicts(existing, Booking{RoomID: 1, Start: at(10.5), Duration: time.Hour})
		if len(conflicts) != 1 {
			t.Fatalf("expected one conflict, got %d", len(conflicts))
		}
		if conflicts[0].ID != 1 {
			t.Fatalf("expected conflict with booking 1, got %d", conflicts[0].ID)
		}
	})

	t.Run("adjacent request in same room is free", func(t *testing.T) {
		conflicts := DetectConflicts(existing, Booking{RoomID: 1, Start: at(11), Duration: time.Hour})
		if len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %v", conflicts)
		}
	})

	t.Run("overlapping request in another room is free", func(t *testing.T) {
		conflicts := DetectConflicts(existing, Booking{RoomID: 3, Start: at(10.5), Duration: time.Hour})
		if len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %v", conflicts)
		}
	})

	t.Run("candidate is excluded from its own conflicts", func(t *testing.T) {
		conflicts := DetectConflicts(existing, Booking{ID: 1, RoomID: 1, Start: at(10), Duration: 90 * time.Minute})
		if len(conflicts) != 0 {
			t.Fatalf("expected booking not to conflict with itself, got %v", conflicts)
		}
	})

	t.Run("multiple overlaps are all reported", func(t *testing.T) {
		crowded := []Booking{
			{ID: 10, RoomID: 5, Start: at(9), Duration: 2 * time.Hour},
			{ID: 11, RoomID: 5, Start: at(11), Duration: time.Hour},
			{ID: 12, RoomID: 5, Start: at(13), Duration: time.Hour},
		}
		conflicts := DetectConflicts(crowded, Booking{RoomID: 5, Start: at(10), Duration: 2 * time.Hour})
		if len(conflicts) != 2 {
			t.Fatalf("expected two conflicts, got %d", len(conflicts))
		}
	})

	t.Run("non-positive candidate duration yields no conflicts", func(t *testing.T) {
		conflicts := DetectConflicts(existing, Booking{RoomID: 1, Start: at(10), Duration: 0})
		if conflicts != nil {
			t.Fatalf("expected nil, got %v", conflicts)
		}
	})
}
