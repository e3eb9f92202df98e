package persistence

import "context"

// DefaultRooms returns the starter room catalogue used by fresh deployments.
func DefaultRooms() []Room {
	return []Room{
		{Name: "Conference Room A", Capacity: 10, Color: "#3b82f6"},
		{Name: "Meeting Room B", Capacity: 6, Color: "#10b981"},
		{Name: "Board Room", Capacity: 15, Color: "#f59e0b"},
	}
}

// SeedRooms inserts the default room catalogue into an empty store. A store
// that already contains rooms is left untouched so restarts never duplicate
// the catalogue.
func SeedRooms(ctx context.Context, repo RoomRepository) ([]Room, error) {
	existing, err := repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	seeded := make([]Room, 0, 3)
	for _, room := range DefaultRooms() {
		created, err := repo.CreateRoom(ctx, room)
		if err != nil {
			return seeded, err
		}
		seeded = append(seeded, created)
	}
	return seeded, nil
}
