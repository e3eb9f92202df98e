package persistence

import (
	"context"
	"time"
)

// RoomRepository exposes storage operations for the room catalog. Rooms are
// never deleted: bookings reference them by ID for their whole lifetime.
type RoomRepository interface {
	// CreateRoom stores a new room, assigning the next monotonic ID, and
	// returns the stored record.
	CreateRoom(ctx context.Context, room Room) (Room, error)
	// UpdateRoom replaces the mutable attributes of an existing room.
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	// ListRooms returns rooms in insertion order (ascending ID).
	ListRooms(ctx context.Context) ([]Room, error)
}

// BookingFilter narrows booking queries. The two time bounds describe a
// closed window: together they keep every booking whose interval touches
// [EndsAtOrAfter, StartsAtOrBefore].
type BookingFilter struct {
	RoomID *int64
	// EndsAtOrAfter keeps bookings whose end instant is at or after the
	// bound.
	EndsAtOrAfter *time.Time
	// StartsAtOrBefore keeps bookings whose start instant is at or before
	// the bound.
	StartsAtOrBefore *time.Time
}

// BookingRepository exposes storage operations for bookings.
type BookingRepository interface {
	// CreateBooking stores a new booking, assigning the next monotonic ID,
	// and returns the stored record.
	CreateBooking(ctx context.Context, booking Booking) (Booking, error)
	UpdateBooking(ctx context.Context, booking Booking) (Booking, error)
	GetBooking(ctx context.Context, id int64) (Booking, error)
	// GetBookingBySlot looks a booking up by its room and exact start
	// instant, the display-layer convenience key.
	GetBookingBySlot(ctx context.Context, roomID int64, start time.Time) (Booking, error)
	// ListBookings returns bookings matching the filter in insertion order
	// (ascending ID).
	ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// SessionRepository stores admin session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}
