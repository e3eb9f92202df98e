package application

import (
	"context"
	"testing"
	"time"

	"github.com/example/room-booking/internal/persistence/memory"
)

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	admin := Principal{IsAdmin: true}

	newFixture := func(t *testing.T) (*EventService, *BookingService, *RoomService, Room) {
		t.Helper()
		storage := memory.Open()
		version := &StoreVersion{}
		rooms := NewRoomService(storage, version)
		availability := NewAvailabilityService(storage, storage)
		bookings := NewBookingService(storage, storage, availability, version)
		events := NewEventService(storage, storage, version)

		room, err := rooms.CreateRoom(ctx, CreateRoomParams{
			Principal: admin,
			Input:     RoomInput{Name: "Conference Room A", Capacity: 10, Color: "#3b82f6"},
		})
		if err != nil {
			t.Fatalf("seed room: %v", err)
		}
		return events, bookings, rooms, room
	}

	t.Run("projects titles, bounds, and room colors", func(t *testing.T) {
		events, bookings, _, room := newFixture(t)

		if _, err := bookings.CreateBooking(ctx, CreateBookingParams{Input: validInput(room.ID, start, time.Hour)}); err != nil {
			t.Fatalf("create: %v", err)
		}

		projected, err := events.ListEvents(ctx)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if len(projected) != 1 {
			t.Fatalf("expected one event, got %d", len(projected))
		}
		event := projected[0]
		if event.Title != "Conference Room A - Alice" {
			t.Fatalf("unexpected title %q", event.Title)
		}
		if !event.Start.Equal(start) || !event.End.Equal(start.Add(time.Hour)) {
			t.Fatalf("unexpected bounds %v..%v", event.Start, event.End)
		}
		if event.Color != "#3b82f6" {
			t.Fatalf("unexpected color %q", event.Color)
		}
	})

	t.Run("room color edits recolor past bookings on the next projection", func(t *testing.T) {
		events, bookings, rooms, room := newFixture(t)

		if _, err := bookings.CreateBooking(ctx, CreateBookingParams{Input: validInput(room.ID, start, time.Hour)}); err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := events.ListEvents(ctx); err != nil {
			t.Fatalf("warm projection: %v", err)
		}

		color := "#ef4444"
		if _, err := rooms.UpdateRoom(ctx, UpdateRoomParams{Principal: admin, RoomID: room.ID, Patch: RoomPatch{Color: &color}}); err != nil {
			t.Fatalf("recolor room: %v", err)
		}

		projected, err := events.ListEvents(ctx)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if projected[0].Color != "#ef4444" {
			t.Fatalf("expected live room color, got %q", projected[0].Color)
		}
	})

	t.Run("booking deletions invalidate the cached projection", func(t *testing.T) {
		events, bookings, _, room := newFixture(t)

		created, err := bookings.CreateBooking(ctx, CreateBookingParams{Input: validInput(room.ID, start, time.Hour)})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := events.ListEvents(ctx); err != nil {
			t.Fatalf("warm projection: %v", err)
		}
		if err := bookings.DeleteBooking(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}

		projected, err := events.ListEvents(ctx)
		if err != nil {
			t.Fatalf("list events: %v", err)
		}
		if len(projected) != 0 {
			t.Fatalf("expected empty projection after delete, got %v", projected)
		}
	})
}
