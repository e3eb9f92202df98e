package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/persistence"
)

// EventService derives calendar-displayable events from the booking and
// room stores. Projection is read-only: colors and titles always reflect
// the live room catalog, so editing a room recolors and retitles its
// bookings on the next query.
type EventService struct {
	bookings persistence.BookingRepository
	rooms    persistence.RoomRepository
	version  *StoreVersion
	cache    *eventCache
	logger   *slog.Logger
}

// NewEventService constructs an event service.
func NewEventService(bookings persistence.BookingRepository, rooms persistence.RoomRepository, version *StoreVersion) *EventService {
	return NewEventServiceWithLogger(bookings, rooms, version, nil)
}

// NewEventServiceWithLogger constructs an event service with a specified logger.
func NewEventServiceWithLogger(bookings persistence.BookingRepository, rooms persistence.RoomRepository, version *StoreVersion, logger *slog.Logger) *EventService {
	return &EventService{
		bookings: bookings,
		rooms:    rooms,
		version:  version,
		cache:    newEventCache(30*time.Second, 16, nil),
		logger:   defaultLogger(logger),
	}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// ListEvents projects all bookings into display events.
func (s *EventService) ListEvents(ctx context.Context) ([]booking.DisplayEvent, error) {
	if s == nil || s.bookings == nil || s.rooms == nil {
		return nil, fmt.Errorf("EventService not configured")
	}

	logger := s.loggerWith(ctx, "ListEvents")

	key := eventCacheKey(s.version.Current())
	if events, ok := s.cache.Get(key); ok {
		logger.With("result_count", len(events), "cached", true).InfoContext(ctx, "events listed")
		return events, nil
	}

	storedBookings, err := s.bookings.ListBookings(ctx, persistence.BookingFilter{})
	if err != nil {
		logger.ErrorContext(ctx, "failed to list bookings for projection", "error", err)
		return nil, err
	}
	storedRooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list rooms for projection", "error", err)
		return nil, err
	}

	entries := make([]booking.BookerInfo, 0, len(storedBookings))
	for _, b := range storedBookings {
		entries = append(entries, booking.BookerInfo{
			Booking:    booking.Booking{ID: b.ID, RoomID: b.RoomID, Start: b.Start, Duration: b.Duration},
			BookerName: b.Name,
		})
	}
	catalog := make([]booking.RoomInfo, 0, len(storedRooms))
	for _, room := range storedRooms {
		catalog = append(catalog, booking.RoomInfo{ID: room.ID, Name: room.Name, Color: room.Color})
	}

	events := booking.ProjectEvents(entries, catalog)
	s.cache.Set(key, events)

	logger.With("result_count", len(events)).InfoContext(ctx, "events listed")
	return events, nil
}
