package application

import "time"

// Principal represents the caller invoking a service method. Booking
// operations are open to anonymous callers; room management requires an
// admin principal issued by the AuthService.
type Principal struct {
	SessionID string
	IsAdmin   bool
}

// Room represents a bookable room exposed by the application services.
type Room struct {
	ID        int64
	Name      string
	Capacity  int
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name     string
	Capacity int
	Color    string
}

// RoomPatch captures a partial room edit. Nil fields are left unchanged;
// the room ID is immutable.
type RoomPatch struct {
	Name     *string
	Capacity *int
	Color    *string
}

// CreateRoomParams wraps the data required to create a room.
type CreateRoomParams struct {
	Principal Principal
	Input     RoomInput
}

// UpdateRoomParams wraps the data required to update a room.
type UpdateRoomParams struct {
	Principal Principal
	RoomID    int64
	Patch     RoomPatch
}

// Booking represents a stored reservation exposed by the application
// services. RoomName and Color are write-time snapshots kept for receipts;
// calendar rendering always resolves colors from the live room.
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

// BookingInput captures caller provided booking fields.
type BookingInput struct {
	RoomID      int64
	Start       time.Time
	Duration    time.Duration
	Name        string
	Email       string
	Description string
}

// BookingPatch captures a partial booking edit. Nil fields are left
// unchanged. Changing Start or Duration re-runs the conflict check; a patch
// touching neither skips it entirely. RoomID and ID are immutable.
type BookingPatch struct {
	Start       *time.Time
	Duration    *time.Duration
	Name        *string
	Email       *string
	Description *string
}

// CreateBookingParams wraps the data required to create a booking.
type CreateBookingParams struct {
	Input BookingInput
}

// UpdateBookingParams wraps the data required to update a booking by ID.
type UpdateBookingParams struct {
	BookingID int64
	Patch     BookingPatch
}

// Availability reports the outcome of a free/busy query for a room slot.
type Availability struct {
	Free      bool
	Conflicts []Booking
}

// Session represents an issued admin session.
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
