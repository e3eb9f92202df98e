package persistence

import "time"

// Room represents a bookable room catalog entry. IDs are assigned by the
// storage layer from a monotonic counter and are never reused.
type Room struct {
	ID        int64
	Name      string
	Capacity  int
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Booking represents a stored reservation. RoomName and Color are write-time
// snapshots kept for receipts; calendar rendering resolves colors from the
// live room instead.
type Booking struct {
	ID          int64
	RoomID      int64
	RoomName    string
	Color       string
	Start       time.Time
	Duration    time.Duration
	Name        string
	Email       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// End returns the exclusive end instant derived from Start and Duration.
func (b Booking) End() time.Time {
	return b.Start.Add(b.Duration)
}

// Session represents an issued admin session token.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
