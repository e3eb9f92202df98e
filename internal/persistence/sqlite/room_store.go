package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/room-booking/internal/persistence"
)

// CreateRoom inserts a new room and returns it with the assigned ID.
func (s *Storage) CreateRoom(ctx context.Context, room persistence.Room) (persistence.Room, error) {
	if room.Name == "" || room.Capacity <= 0 {
		return persistence.Room{}, persistence.ErrConstraintViolation
	}

	now := s.now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO rooms (name, capacity, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		room.Name, room.Capacity, room.Color,
		formatTime(room.CreatedAt), formatTime(room.UpdatedAt),
	)
	if err != nil {
		return persistence.Room{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Room{}, fmt.Errorf("sqlite: room insert id: %w", err)
	}
	room.ID = id
	return room, nil
}

// UpdateRoom replaces the mutable attributes of an existing room.
func (s *Storage) UpdateRoom(ctx context.Context, room persistence.Room) (persistence.Room, error) {
	if room.Name == "" || room.Capacity <= 0 {
		return persistence.Room{}, persistence.ErrConstraintViolation
	}

	room.UpdatedAt = s.now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE rooms
		SET name = ?, capacity = ?, color = ?, updated_at = ?
		WHERE id = ?`,
		room.Name, room.Capacity, room.Color, formatTime(room.UpdatedAt), room.ID,
	)
	if err != nil {
		return persistence.Room{}, mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Room{}, fmt.Errorf("sqlite: room update rows: %w", err)
	}
	if affected == 0 {
		return persistence.Room{}, persistence.ErrNotFound
	}

	return s.GetRoom(ctx, room.ID)
}

// GetRoom retrieves a room by ID.
func (s *Storage) GetRoom(ctx context.Context, id int64) (persistence.Room, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, capacity, color, created_at, updated_at
		FROM rooms WHERE id = ?`, id)
	return scanRoom(row)
}

// ListRooms returns all rooms in insertion order.
func (s *Storage) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, capacity, color, created_at, updated_at
		FROM rooms ORDER BY id`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return rooms, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (persistence.Room, error) {
	var (
		room                 persistence.Room
		createdAt, updatedAt string
	)
	if err := row.Scan(&room.ID, &room.Name, &room.Capacity, &room.Color, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, mapError(err)
	}

	var err error
	if room.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Room{}, err
	}
	if room.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Room{}, err
	}
	return room, nil
}
