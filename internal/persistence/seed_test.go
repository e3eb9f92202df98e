package persistence_test

import (
	"context"
	"testing"

	"github.com/example/room-booking/internal/persistence"
	"github.com/example/room-booking/internal/persistence/memory"
)

func TestSeedRooms(t *testing.T) {
	ctx := context.Background()

	t.Run("populates an empty store", func(t *testing.T) {
		storage := memory.Open()

		seeded, err := persistence.SeedRooms(ctx, storage)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if len(seeded) != 3 {
			t.Fatalf("expected 3 seeded rooms, got %d", len(seeded))
		}
		if seeded[0].Name != "Conference Room A" || seeded[0].ID != 1 {
			t.Fatalf("unexpected first room %+v", seeded[0])
		}
	})

	t.Run("is a no-op when rooms exist", func(t *testing.T) {
		storage := memory.Open()
		if _, err := storage.CreateRoom(ctx, persistence.Room{Name: "Existing", Capacity: 4, Color: "#ffffff"}); err != nil {
			t.Fatalf("create room: %v", err)
		}

		seeded, err := persistence.SeedRooms(ctx, storage)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if seeded != nil {
			t.Fatalf("expected no seeding, got %d rooms", len(seeded))
		}

		rooms, err := storage.ListRooms(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rooms) != 1 {
			t.Fatalf("expected the store to keep its single room, got %d", len(rooms))
		}
	})
}
