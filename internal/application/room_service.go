package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// RoomService owns the room catalog: add and edit, never delete. Bookings
// reference rooms by ID for their whole lifetime.
type RoomService struct {
	rooms   persistence.RoomRepository
	version *StoreVersion
	logger  *slog.Logger
}

// NewRoomService constructs a room service with the provided dependencies.
func NewRoomService(rooms persistence.RoomRepository, version *StoreVersion) *RoomService {
	return NewRoomServiceWithLogger(rooms, version, nil)
}

// NewRoomServiceWithLogger constructs a room service with a specified logger.
func NewRoomServiceWithLogger(rooms persistence.RoomRepository, version *StoreVersion, logger *slog.Logger) *RoomService {
	return &RoomService{rooms: rooms, version: version, logger: defaultLogger(logger)}
}

func (s *RoomService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoomService", operation, attrs...)
}

// CreateRoom validates input and persists a new room for administrators.
func (s *RoomService) CreateRoom(ctx context.Context, params CreateRoomParams) (room Room, err error) {
	if s == nil || s.rooms == nil {
		err = fmt.Errorf("RoomService not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoom")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("room_id", room.ID).InfoContext(ctx, "room created")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	input := params.Input
	input.Name = strings.TrimSpace(input.Name)
	input.Color = strings.TrimSpace(input.Color)
	if input.Color == "" {
		input.Color = booking.DefaultColor
	}

	vErr := &ValidationError{}
	validateRoomInput(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	stored, err := s.rooms.CreateRoom(ctx, persistence.Room{
		Name:     input.Name,
		Capacity: input.Capacity,
		Color:    input.Color,
	})
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	s.version.Bump()
	room = fromStoredRoom(stored)
	return
}

// UpdateRoom applies a partial edit to an existing room. The room ID is
// immutable and rooms are never deleted.
func (s *RoomService) UpdateRoom(ctx context.Context, params UpdateRoomParams) (room Room, err error) {
	if s == nil || s.rooms == nil {
		err = fmt.Errorf("RoomService not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoom", "room_id", params.RoomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update room", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "room updated")
	}()

	if !params.Principal.IsAdmin {
		err = ErrUnauthorized
		return
	}

	existing, err := s.rooms.GetRoom(ctx, params.RoomID)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	patch := params.Patch
	if patch.Name != nil {
		existing.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Capacity != nil {
		existing.Capacity = *patch.Capacity
	}
	if patch.Color != nil {
		existing.Color = strings.TrimSpace(*patch.Color)
	}

	vErr := &ValidationError{}
	validateRoomInput(RoomInput{Name: existing.Name, Capacity: existing.Capacity, Color: existing.Color}, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	stored, err := s.rooms.UpdateRoom(ctx, existing)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	s.version.Bump()
	room = fromStoredRoom(stored)
	return
}

// GetRoom retrieves a room by ID.
func (s *RoomService) GetRoom(ctx context.Context, id int64) (Room, error) {
	if s == nil || s.rooms == nil {
		return Room{}, fmt.Errorf("RoomService not configured")
	}

	stored, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return Room{}, mapRoomRepoError(err)
	}
	return fromStoredRoom(stored), nil
}

// ListRooms returns all rooms in insertion order.
func (s *RoomService) ListRooms(ctx context.Context) ([]Room, error) {
	if s == nil || s.rooms == nil {
		return nil, fmt.Errorf("RoomService not configured")
	}

	stored, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, mapRoomRepoError(err)
	}
	return fromStoredRooms(stored), nil
}

func validateRoomInput(input RoomInput, vErr *ValidationError) {
	if input.Name == "" {
		vErr.add("name", "name is required")
	}
	if input.Capacity <= 0 {
		vErr.add("capacity", "capacity must be positive")
	}
	if input.Color == "" {
		vErr.add("color", "color is required")
	}
}

func mapRoomRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrRoomNotFound
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("capacity", "capacity must be positive")
		return vErr
	}
	return err
}
