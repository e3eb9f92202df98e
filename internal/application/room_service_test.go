package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/room-booking/internal/persistence/memory"
)

func TestRoomService_CreateRoom(t *testing.T) {
	ctx := context.Background()
	admin := Principal{SessionID: "s1", IsAdmin: true}

	t.Run("requires administrator privileges", func(t *testing.T) {
		svc := NewRoomService(memory.Open(), nil)

		_, err := svc.CreateRoom(ctx, CreateRoomParams{
			Principal: Principal{},
			Input:     RoomInput{Name: "Conference Room A", Capacity: 10},
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("validates required attributes", func(t *testing.T) {
		svc := NewRoomService(memory.Open(), nil)

		_, err := svc.CreateRoom(ctx, CreateRoomParams{
			Principal: admin,
			Input:     RoomInput{Name: "   ", Capacity: 0},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["name"]; !ok {
			t.Fatalf("expected name validation error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors["capacity"]; !ok {
			t.Fatalf("expected capacity validation error, got %v", vErr.FieldErrors)
		}
	})

	t.Run("persists rooms with trimmed attributes and default color", func(t *testing.T) {
		svc := NewRoomService(memory.Open(), nil)

		created, err := svc.CreateRoom(ctx, CreateRoomParams{
			Principal: admin,
			Input:     RoomInput{Name: "  Conference Room A  ", Capacity: 10},
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if created.ID != 1 {
			t.Fatalf("expected id 1, got %d", created.ID)
		}
		if created.Name != "Conference Room A" {
			t.Fatalf("expected trimmed name, got %q", created.Name)
		}
		if created.Color != "#3b82f6" {
			t.Fatalf("expected default color, got %q", created.Color)
		}
	})

	t.Run("assigns monotonically increasing ids", func(t *testing.T) {
		svc := NewRoomService(memory.Open(), nil)

		first, err := svc.CreateRoom(ctx, CreateRoomParams{Principal: admin, Input: RoomInput{Name: "A", Capacity: 4}})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		second, err := svc.CreateRoom(ctx, CreateRoomParams{Principal: admin, Input: RoomInput{Name: "B", Capacity: 6}})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if second.ID <= first.ID {
			t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
		}
	})
}

func TestRoomService_UpdateRoom(t *testing.T) {
	ctx := context.Background()
	admin := Principal{SessionID: "s1", IsAdmin: true}

	seed := func(t *testing.T) (*RoomService, Room) {
		t.Helper()
		svc := NewRoomService(memory.Open(), nil)
		room, err := svc.CreateRoom(ctx, CreateRoomParams{
			Principal: admin,
			Input:     RoomInput{Name: "Board Room", Capacity: 15, Color: "#f59e0b"},
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		return svc, room
	}

	t.Run("requires administrator privileges", func(t *testing.T) {
		svc, room := seed(t)
		name := "Renamed"
		_, err := svc.UpdateRoom(ctx, UpdateRoomParams{Principal: Principal{}, RoomID: room.ID, Patch: RoomPatch{Name: &name}})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("applies partial patches and keeps the id", func(t *testing.T) {
		svc, room := seed(t)
		color := "#ef4444"
		updated, err := svc.UpdateRoom(ctx, UpdateRoomParams{Principal: admin, RoomID: room.ID, Patch: RoomPatch{Color: &color}})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != room.ID {
			t.Fatalf("id changed: %d != %d", updated.ID, room.ID)
		}
		if updated.Color != "#ef4444" || updated.Name != "Board Room" || updated.Capacity != 15 {
			t.Fatalf("unexpected patch result %+v", updated)
		}
	})

	t.Run("rejects patches that invalidate the room", func(t *testing.T) {
		svc, room := seed(t)
		capacity := 0
		_, err := svc.UpdateRoom(ctx, UpdateRoomParams{Principal: admin, RoomID: room.ID, Patch: RoomPatch{Capacity: &capacity}})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("reports missing rooms", func(t *testing.T) {
		svc, _ := seed(t)
		name := "Ghost"
		_, err := svc.UpdateRoom(ctx, UpdateRoomParams{Principal: admin, RoomID: 999, Patch: RoomPatch{Name: &name}})
		if !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("expected ErrRoomNotFound, got %v", err)
		}
	})
}

func TestRoomService_ListRooms(t *testing.T) {
	ctx := context.Background()
	admin := Principal{IsAdmin: true}
	svc := NewRoomService(memory.Open(), nil)

	for _, name := range []string{"Conference Room A", "Meeting Room B", "Board Room"} {
		if _, err := svc.CreateRoom(ctx, CreateRoomParams{Principal: admin, Input: RoomInput{Name: name, Capacity: 8}}); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	rooms, err := svc.ListRooms(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected three rooms, got %d", len(rooms))
	}
	if rooms[0].Name != "Conference Room A" || rooms[2].Name != "Board Room" {
		t.Fatalf("expected insertion order, got %v", rooms)
	}
}
