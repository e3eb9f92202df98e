package application

import "github.com/example/room-booking/internal/persistence"

func fromStoredRoom(room persistence.Room) Room {
	return Room{
		ID:        room.ID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		Color:     room.Color,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func fromStoredRooms(rooms []persistence.Room) []Room {
	if len(rooms) == 0 {
		return nil
	}
	out := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, fromStoredRoom(room))
	}
	return out
}

func fromStoredBooking(b persistence.Booking) Booking {
	return Booking{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		Color:       b.Color,
		Start:       b.Start,
		Duration:    b.Duration,
		Name:        b.Name,
		Email:       b.Email,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func fromStoredBookings(bookings []persistence.Booking) []Booking {
	if len(bookings) == 0 {
		return nil
	}
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, fromStoredBooking(b))
	}
	return out
}

func toStoredBooking(b Booking) persistence.Booking {
	return persistence.Booking{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		Color:       b.Color,
		Start:       b.Start,
		Duration:    b.Duration,
		Name:        b.Name,
		Email:       b.Email,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func fromStoredSession(s persistence.Session) Session {
	return Session{
		ID:        s.ID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
		RevokedAt: s.RevokedAt,
	}
}
