package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// AvailabilityService answers free/busy queries for room slots. It is a pure
// query surface: the same conflict core backs both standalone availability
// checks and the write-path checks inside BookingService.
type AvailabilityService struct {
	bookings persistence.BookingRepository
	rooms    persistence.RoomRepository
	logger   *slog.Logger
}

// NewAvailabilityService constructs an availability service.
func NewAvailabilityService(bookings persistence.BookingRepository, rooms persistence.RoomRepository) *AvailabilityService {
	return NewAvailabilityServiceWithLogger(bookings, rooms, nil)
}

// NewAvailabilityServiceWithLogger constructs an availability service with a specified logger.
func NewAvailabilityServiceWithLogger(bookings persistence.BookingRepository, rooms persistence.RoomRepository, logger *slog.Logger) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, rooms: rooms, logger: defaultLogger(logger)}
}

func (s *AvailabilityService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AvailabilityService", operation, attrs...)
}

// CheckAvailability reports whether the candidate slot is free in the given
// room and lists the conflicting bookings when it is not. Adjacency is not
// conflict: a booking ending exactly when the candidate starts never counts.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, roomID int64, start time.Time, duration time.Duration) (Availability, error) {
	if s == nil || s.bookings == nil || s.rooms == nil {
		return Availability{}, fmt.Errorf("AvailabilityService not configured")
	}

	logger := s.loggerWith(ctx, "CheckAvailability", "room_id", roomID)

	if _, err := booking.NewSlot(start, duration); err != nil {
		vErr := &ValidationError{}
		vErr.add("duration", "duration must be positive")
		logger.ErrorContext(ctx, "availability query rejected", "error", vErr, "error_kind", ErrorKind(vErr))
		return Availability{}, vErr
	}

	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		err = mapRoomRepoError(err)
		logger.ErrorContext(ctx, "availability query rejected", "error", err, "error_kind", ErrorKind(err))
		return Availability{}, err
	}

	result, err := s.checkSlot(ctx, roomID, start, duration, 0)
	if err != nil {
		logger.ErrorContext(ctx, "availability query failed", "error", err, "error_kind", ErrorKind(err))
		return Availability{}, err
	}

	logger.With("free", result.Free, "conflict_count", len(result.Conflicts)).InfoContext(ctx, "availability checked")
	return result, nil
}

// checkSlot runs the conflict core against the room's bookings, excluding
// the booking identified by excludeID (zero means exclude nothing). The
// write path uses it directly so updates never conflict with themselves.
func (s *AvailabilityService) checkSlot(ctx context.Context, roomID int64, start time.Time, duration time.Duration, excludeID int64) (Availability, error) {
	stored, err := s.bookings.ListBookings(ctx, persistence.BookingFilter{RoomID: &roomID})
	if err != nil && !errors.Is(err, persistence.ErrNotFound) {
		return Availability{}, err
	}

	existing := make([]booking.Booking, 0, len(stored))
	for _, b := range stored {
		existing = append(existing, booking.Booking{ID: b.ID, RoomID: b.RoomID, Start: b.Start, Duration: b.Duration})
	}

	candidate := booking.Booking{ID: excludeID, RoomID: roomID, Start: start, Duration: duration}
	conflicts := booking.DetectConflicts(existing, candidate)
	if len(conflicts) == 0 {
		return Availability{Free: true}, nil
	}

	conflicting := make([]Booking, 0, len(conflicts))
	for _, c := range conflicts {
		for _, b := range stored {
			if b.ID == c.ID {
				conflicting = append(conflicting, fromStoredBooking(b))
				break
			}
		}
	}
	return Availability{Free: false, Conflicts: conflicting}, nil
}
