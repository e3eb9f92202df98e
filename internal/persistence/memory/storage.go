// Package memory provides the process-lifetime storage implementation used
// when no SQLite DSN is configured. It implements the same repository
// interfaces as the sqlite package so the backing store can be swapped
// without changing any service contract.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/room-booking/internal/persistence"
)

// Storage holds all records in process memory behind a single RWMutex.
type Storage struct {
	mu            sync.RWMutex
	rooms         map[int64]persistence.Room
	bookings      map[int64]persistence.Booking
	sessions      map[string]persistence.Session
	nextRoomID    int64
	nextBookingID int64
	now           func() time.Time
}

// Open returns an empty in-memory storage.
func Open() *Storage {
	return &Storage{
		rooms:         make(map[int64]persistence.Room),
		bookings:      make(map[int64]persistence.Booking),
		sessions:      make(map[string]persistence.Session),
		nextRoomID:    1,
		nextBookingID: 1,
		now:           time.Now,
	}
}

// SetNowFunc overrides the timestamp source. Intended for tests.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Close releases resources held by the storage. No-op for memory.
func (s *Storage) Close() error {
	return nil
}

// Migrate initialises the storage. No-op for memory.
func (s *Storage) Migrate(context.Context) error {
	return nil
}

// --- RoomRepository implementation ---

// CreateRoom stores a new room under the next monotonic ID.
func (s *Storage) CreateRoom(_ context.Context, room persistence.Room) (persistence.Room, error) {
	if room.Name == "" || room.Capacity <= 0 {
		return persistence.Room{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	room.ID = s.nextRoomID
	s.nextRoomID++
	room.CreatedAt = now
	room.UpdatedAt = now
	s.rooms[room.ID] = room
	return room, nil
}

// UpdateRoom replaces the mutable attributes of an existing room.
func (s *Storage) UpdateRoom(_ context.Context, room persistence.Room) (persistence.Room, error) {
	if room.Name == "" || room.Capacity <= 0 {
		return persistence.Room{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rooms[room.ID]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}

	existing.Name = room.Name
	existing.Capacity = room.Capacity
	existing.Color = room.Color
	existing.UpdatedAt = s.now().UTC()
	s.rooms[existing.ID] = existing
	return existing, nil
}

// GetRoom retrieves a room by ID.
func (s *Storage) GetRoom(_ context.Context, id int64) (persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return room, nil
}

// ListRooms returns all rooms in insertion order.
func (s *Storage) ListRooms(_ context.Context) ([]persistence.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.rooms) == 0 {
		return nil, nil
	}
	rooms := make([]persistence.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

// --- BookingRepository implementation ---

// CreateBooking stores a new booking under the next monotonic ID.
func (s *Storage) CreateBooking(_ context.Context, booking persistence.Booking) (persistence.Booking, error) {
	if booking.Duration <= 0 {
		return persistence.Booking{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[booking.RoomID]; !ok {
		return persistence.Booking{}, persistence.ErrForeignKeyViolation
	}

	now := s.now().UTC()
	booking.ID = s.nextBookingID
	s.nextBookingID++
	booking.CreatedAt = now
	booking.UpdatedAt = now
	s.bookings[booking.ID] = booking
	return booking, nil
}

// UpdateBooking replaces an existing booking record.
func (s *Storage) UpdateBooking(_ context.Context, booking persistence.Booking) (persistence.Booking, error) {
	if booking.Duration <= 0 {
		return persistence.Booking{}, persistence.ErrConstraintViolation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.bookings[booking.ID]
	if !ok {
		return persistence.Booking{}, persistence.ErrNotFound
	}
	if _, ok := s.rooms[booking.RoomID]; !ok {
		return persistence.Booking{}, persistence.ErrForeignKeyViolation
	}

	booking.CreatedAt = existing.CreatedAt
	booking.UpdatedAt = s.now().UTC()
	s.bookings[booking.ID] = booking
	return booking, nil
}

// GetBooking retrieves a booking by ID.
func (s *Storage) GetBooking(_ context.Context, id int64) (persistence.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return persistence.Booking{}, persistence.ErrNotFound
	}
	return booking, nil
}

// GetBookingBySlot retrieves a booking by room and exact start instant.
func (s *Storage) GetBookingBySlot(_ context.Context, roomID int64, start time.Time) (persistence.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, booking := range s.bookings {
		if booking.RoomID == roomID && booking.Start.Equal(start) {
			return booking, nil
		}
	}
	return persistence.Booking{}, persistence.ErrNotFound
}

// ListBookings returns bookings matching the filter in insertion order.
func (s *Storage) ListBookings(_ context.Context, filter persistence.BookingFilter) ([]persistence.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []persistence.Booking
	for _, booking := range s.bookings {
		if filter.RoomID != nil && booking.RoomID != *filter.RoomID {
			continue
		}
		if filter.EndsAtOrAfter != nil && booking.End().Before(*filter.EndsAtOrAfter) {
			continue
		}
		if filter.StartsAtOrBefore != nil && booking.Start.After(*filter.StartsAtOrBefore) {
			continue
		}
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings, nil
}

// DeleteBooking removes a booking by ID.
func (s *Storage) DeleteBooking(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

// --- SessionRepository implementation ---

// CreateSession stores a new session keyed by token.
func (s *Storage) CreateSession(_ context.Context, session persistence.Session) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.Token]; ok {
		return persistence.Session{}, persistence.ErrDuplicate
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = s.now().UTC()
	}
	s.sessions[session.Token] = session
	return session, nil
}

// GetSession retrieves a session by token.
func (s *Storage) GetSession(_ context.Context, token string) (persistence.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

// RevokeSession marks a session revoked at the supplied instant.
func (s *Storage) RevokeSession(_ context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return persistence.Session{}, persistence.ErrNotFound
	}
	stamp := revokedAt.UTC()
	session.RevokedAt = &stamp
	s.sessions[token] = session
	return session, nil
}

// DeleteExpiredSessions drops sessions whose expiry precedes the reference.
func (s *Storage) DeleteExpiredSessions(_ context.Context, reference time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if session.ExpiresAt.Before(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}
