package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/example/room-booking/internal/persistence"
)

// emailPattern is the address-shape check used by the booking form.
var emailPattern = regexp.MustCompile(`^\S+@\S+$`)

// BookingService owns the booking store. It enforces the no-double-booking
// invariant per room: the conflict check and the subsequent write happen
// under a per-room mutex, so the check can never act on a stale snapshot
// when the service is hosted concurrently.
type BookingService struct {
	bookings     persistence.BookingRepository
	rooms        persistence.RoomRepository
	availability *AvailabilityService
	version      *StoreVersion
	logger       *slog.Logger

	mu        sync.Mutex
	roomLocks map[int64]*sync.Mutex
}

// NewBookingService constructs a booking service with the provided dependencies.
func NewBookingService(bookings persistence.BookingRepository, rooms persistence.RoomRepository, availability *AvailabilityService, version *StoreVersion) *BookingService {
	return NewBookingServiceWithLogger(bookings, rooms, availability, version, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(bookings persistence.BookingRepository, rooms persistence.RoomRepository, availability *AvailabilityService, version *StoreVersion, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookings:     bookings,
		rooms:        rooms,
		availability: availability,
		version:      version,
		logger:       defaultLogger(logger),
		roomLocks:    make(map[int64]*sync.Mutex),
	}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// roomLock returns the mutex serializing check-then-write for one room.
func (s *BookingService) roomLock(roomID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomID] = lock
	}
	return lock
}

// CreateBooking validates the request, checks the slot for conflicts, and
// persists the booking with a snapshot of the room's current name and color.
// Validation fully precedes any mutation.
func (s *BookingService) CreateBooking(ctx context.Context, params CreateBookingParams) (created Booking, err error) {
	if s == nil || s.bookings == nil || s.rooms == nil || s.availability == nil {
		err = fmt.Errorf("BookingService not configured")
		return
	}

	input := params.Input
	logger := s.loggerWith(ctx, "CreateBooking", "room_id", input.RoomID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("booking_id", created.ID).InfoContext(ctx, "booking created")
	}()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	vErr := &ValidationError{}
	validateBooker(input.Name, input.Email, vErr)
	validateSlot(input.Start, input.Duration, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	room, err := s.rooms.GetRoom(ctx, input.RoomID)
	if err != nil {
		err = mapRoomRepoError(err)
		return
	}

	lock := s.roomLock(input.RoomID)
	lock.Lock()
	defer lock.Unlock()

	result, err := s.availability.checkSlot(ctx, input.RoomID, input.Start, input.Duration, 0)
	if err != nil {
		return
	}
	if !result.Free {
		err = &ConflictError{Conflicts: result.Conflicts}
		return
	}

	stored, err := s.bookings.CreateBooking(ctx, persistence.Booking{
		RoomID:      input.RoomID,
		RoomName:    room.Name,
		Color:       room.Color,
		Start:       input.Start,
		Duration:    input.Duration,
		Name:        input.Name,
		Email:       input.Email,
		Description: input.Description,
	})
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	s.version.Bump()
	created = fromStoredBooking(stored)
	return
}

// UpdateBooking applies a partial edit to an existing booking. A patch that
// changes Start or Duration re-runs the conflict check against all other
// bookings in the room; a patch touching neither skips the conflict path.
func (s *BookingService) UpdateBooking(ctx context.Context, params UpdateBookingParams) (updated Booking, err error) {
	if s == nil || s.bookings == nil || s.availability == nil {
		err = fmt.Errorf("BookingService not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateBooking", "booking_id", params.BookingID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking updated")
	}()

	stored, err := s.bookings.GetBooking(ctx, params.BookingID)
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}
	existing := fromStoredBooking(stored)

	candidate := existing
	patch := params.Patch
	if patch.Start != nil {
		candidate.Start = *patch.Start
	}
	if patch.Duration != nil {
		candidate.Duration = *patch.Duration
	}
	if patch.Name != nil {
		candidate.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		candidate.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Description != nil {
		candidate.Description = *patch.Description
	}

	vErr := &ValidationError{}
	validateBooker(candidate.Name, candidate.Email, vErr)
	validateSlot(candidate.Start, candidate.Duration, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	timeChanged := !candidate.Start.Equal(existing.Start) || candidate.Duration != existing.Duration
	if timeChanged {
		lock := s.roomLock(candidate.RoomID)
		lock.Lock()
		defer lock.Unlock()

		var result Availability
		result, err = s.availability.checkSlot(ctx, candidate.RoomID, candidate.Start, candidate.Duration, candidate.ID)
		if err != nil {
			return
		}
		if !result.Free {
			err = &ConflictError{Conflicts: result.Conflicts}
			return
		}
	}

	persisted, err := s.bookings.UpdateBooking(ctx, toStoredBooking(candidate))
	if err != nil {
		err = mapBookingRepoError(err)
		return
	}

	s.version.Bump()
	updated = fromStoredBooking(persisted)
	return
}

// UpdateBookingBySlot resolves a booking through the (room, start) display
// key and applies the patch to it.
func (s *BookingService) UpdateBookingBySlot(ctx context.Context, roomID int64, start time.Time, patch BookingPatch) (Booking, error) {
	booking, err := s.findBySlot(ctx, roomID, start)
	if err != nil {
		return Booking{}, err
	}
	return s.UpdateBooking(ctx, UpdateBookingParams{BookingID: booking.ID, Patch: patch})
}

// DeleteBooking removes a booking by ID. Confirmation prompts belong to the
// UI; once the booking is found, removal is unconditional.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID int64) (err error) {
	if s == nil || s.bookings == nil {
		return fmt.Errorf("BookingService not configured")
	}

	logger := s.loggerWith(ctx, "DeleteBooking", "booking_id", bookingID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "booking deleted")
	}()

	if err = s.bookings.DeleteBooking(ctx, bookingID); err != nil {
		err = mapBookingRepoError(err)
		return
	}

	s.version.Bump()
	return nil
}

// DeleteBookingBySlot resolves a booking through the (room, start) display
// key and removes it.
func (s *BookingService) DeleteBookingBySlot(ctx context.Context, roomID int64, start time.Time) error {
	booking, err := s.findBySlot(ctx, roomID, start)
	if err != nil {
		return err
	}
	return s.DeleteBooking(ctx, booking.ID)
}

// GetBooking retrieves a booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (Booking, error) {
	if s == nil || s.bookings == nil {
		return Booking{}, fmt.Errorf("BookingService not configured")
	}
	stored, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return Booking{}, mapBookingRepoError(err)
	}
	return fromStoredBooking(stored), nil
}

// ListBookings returns all bookings in insertion order.
func (s *BookingService) ListBookings(ctx context.Context) ([]Booking, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("BookingService not configured")
	}
	stored, err := s.bookings.ListBookings(ctx, persistence.BookingFilter{})
	if err != nil {
		return nil, mapBookingRepoError(err)
	}
	return fromStoredBookings(stored), nil
}

// BookingsForRoom returns the bookings of one room in insertion order.
func (s *BookingService) BookingsForRoom(ctx context.Context, roomID int64) ([]Booking, error) {
	if s == nil || s.bookings == nil {
		return nil, fmt.Errorf("BookingService not configured")
	}
	stored, err := s.bookings.ListBookings(ctx, persistence.BookingFilter{RoomID: &roomID})
	if err != nil {
		return nil, mapBookingRepoError(err)
	}
	return fromStoredBookings(stored), nil
}

func (s *BookingService) findBySlot(ctx context.Context, roomID int64, start time.Time) (Booking, error) {
	if s == nil || s.bookings == nil {
		return Booking{}, fmt.Errorf("BookingService not configured")
	}
	stored, err := s.bookings.GetBookingBySlot(ctx, roomID, start)
	if err != nil {
		return Booking{}, mapBookingRepoError(err)
	}
	return fromStoredBooking(stored), nil
}

func validateBooker(name, email string, vErr *ValidationError) {
	if name == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	} else if !emailPattern.MatchString(email) {
		vErr.add("email", "email is invalid")
	}
}

func validateSlot(start time.Time, duration time.Duration, vErr *ValidationError) {
	if start.IsZero() {
		vErr.add("start", "start is required")
	}
	if duration <= 0 {
		vErr.add("duration", "duration must be positive")
	}
}

func mapBookingRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrBookingNotFound
	}
	if errors.Is(err, persistence.ErrForeignKeyViolation) {
		return ErrRoomNotFound
	}
	if errors.Is(err, persistence.ErrConstraintViolation) {
		vErr := &ValidationError{}
		vErr.add("duration", "duration must be positive")
		return vErr
	}
	return err
}
