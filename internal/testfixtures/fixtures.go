package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/room-booking/internal/persistence"
)

var (
	roomCounter    uint64
	bookingCounter uint64
)

var referenceTime = time.Date(2024, time.June, 3, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It is a Monday morning, which keeps slot arithmetic in tests readable.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Room fixtures -----------------------------

// RoomOption configures a generated room fixture.
type RoomOption func(*persistence.Room)

// NewRoomFixture returns a deterministic room record with optional overrides.
// The ID is left zero so storage layers assign their own.
func NewRoomFixture(opts ...RoomOption) persistence.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := persistence.Room{
		Name:      fmt.Sprintf("Room %03d", idx),
		Capacity:  8,
		Color:     "#3b82f6",
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRoomName overrides the generated room name.
func WithRoomName(name string) RoomOption {
	return func(r *persistence.Room) {
		r.Name = name
	}
}

// WithRoomCapacity overrides the generated capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(r *persistence.Room) {
		r.Capacity = capacity
	}
}

// WithRoomColor overrides the generated display color.
func WithRoomColor(color string) RoomOption {
	return func(r *persistence.Room) {
		r.Color = color
	}
}

// --------------------------- Booking fixtures ----------------------------

// BookingOption configures a generated booking fixture.
type BookingOption func(*persistence.Booking)

// NewBookingFixture returns a deterministic booking record with optional
// overrides. Consecutive fixtures occupy consecutive hourly slots so they
// never collide unless a test arranges it.
func NewBookingFixture(opts ...BookingOption) persistence.Booking {
	idx := atomic.AddUint64(&bookingCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := persistence.Booking{
		RoomID:    1,
		RoomName:  "Room 001",
		Color:     "#3b82f6",
		Start:     start,
		Duration:  time.Hour,
		Name:      fmt.Sprintf("Booker %03d", idx),
		Email:     fmt.Sprintf("booker-%03d@example.com", idx),
		CreatedAt: start,
		UpdatedAt: start,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithBookingRoom overrides the room the booking belongs to.
func WithBookingRoom(roomID int64) BookingOption {
	return func(b *persistence.Booking) {
		b.RoomID = roomID
	}
}

// WithBookingSlot overrides the start and duration of the booking.
func WithBookingSlot(start time.Time, duration time.Duration) BookingOption {
	return func(b *persistence.Booking) {
		b.Start = start
		b.Duration = duration
	}
}

// WithBookingBooker overrides the booker contact details.
func WithBookingBooker(name, email string) BookingOption {
	return func(b *persistence.Booking) {
		b.Name = name
		b.Email = email
	}
}

// WithBookingDescription overrides the free-form description.
func WithBookingDescription(description string) BookingOption {
	return func(b *persistence.Booking) {
		b.Description = description
	}
}
