package booking

import (
	"fmt"
	"time"
)

// DefaultColor is used when an event's room cannot be resolved.
const DefaultColor = "#3b82f6"

// RoomInfo carries the room attributes needed for event projection.
type RoomInfo struct {
	ID    int64
	Name  string
	Color string
}

// BookerInfo carries the booking attributes needed for event projection
// beyond the time slot.
type BookerInfo struct {
	Booking
	BookerName string
}

// DisplayEvent is a calendar-renderable view of a booking.
type DisplayEvent struct {
	BookingID int64
	RoomID    int64
	Title     string
	Start     time.Time
	End       time.Time
	Color     string
}

// ProjectEvents derives display events from bookings and the current room
// catalog. Colors are resolved from the live room, not from any snapshot
// stored on the booking, so editing a room recolors its history on the next
// projection.
func ProjectEvents(bookings []BookerInfo, rooms []RoomInfo) []DisplayEvent {
	if len(bookings) == 0 {
		return nil
	}

	byID := make(map[int64]RoomInfo, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	events := make([]DisplayEvent, 0, len(bookings))
	for _, b := range bookings {
		roomName := fmt.Sprintf("room %d", b.RoomID)
		color := DefaultColor
		if room, ok := byID[b.RoomID]; ok {
			roomName = room.Name
			if room.Color != "" {
				color = room.Color
			}
		}
		events = append(events, DisplayEvent{
			BookingID: b.ID,
			RoomID:    b.RoomID,
			Title:     fmt.Sprintf("%s - %s", roomName, b.BookerName),
			Start:     b.Start,
			End:       b.End(),
			Color:     color,
		})
	}
	return events
}
