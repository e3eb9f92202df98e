package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/room-booking/internal/persistence"
)

// CreateBooking inserts a new booking and returns it with the assigned ID.
func (s *Storage) CreateBooking(ctx context.Context, booking persistence.Booking) (persistence.Booking, error) {
	if booking.Duration <= 0 {
		return persistence.Booking{}, persistence.ErrConstraintViolation
	}

	now := s.now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (room_id, room_name, color, start_at, end_at, duration_ns,
			booker_name, booker_email, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.RoomID, booking.RoomName, booking.Color,
		formatTime(booking.Start), formatTime(booking.End()), int64(booking.Duration),
		booking.Name, booking.Email, booking.Description,
		formatTime(booking.CreatedAt), formatTime(booking.UpdatedAt),
	)
	if err != nil {
		return persistence.Booking{}, mapError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return persistence.Booking{}, fmt.Errorf("sqlite: booking insert id: %w", err)
	}
	booking.ID = id
	return booking, nil
}

// UpdateBooking replaces an existing booking record.
func (s *Storage) UpdateBooking(ctx context.Context, booking persistence.Booking) (persistence.Booking, error) {
	if booking.Duration <= 0 {
		return persistence.Booking{}, persistence.ErrConstraintViolation
	}

	booking.UpdatedAt = s.now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE bookings
		SET room_id = ?, room_name = ?, color = ?, start_at = ?, end_at = ?, duration_ns = ?,
			booker_name = ?, booker_email = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		booking.RoomID, booking.RoomName, booking.Color,
		formatTime(booking.Start), formatTime(booking.End()), int64(booking.Duration),
		booking.Name, booking.Email, booking.Description,
		formatTime(booking.UpdatedAt), booking.ID,
	)
	if err != nil {
		return persistence.Booking{}, mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.Booking{}, fmt.Errorf("sqlite: booking update rows: %w", err)
	}
	if affected == 0 {
		return persistence.Booking{}, persistence.ErrNotFound
	}

	return s.GetBooking(ctx, booking.ID)
}

// GetBooking retrieves a booking by ID.
func (s *Storage) GetBooking(ctx context.Context, id int64) (persistence.Booking, error) {
	row := s.db.QueryRowContext(ctx, selectBooking+` WHERE id = ?`, id)
	return scanBooking(row)
}

// GetBookingBySlot retrieves a booking by room and exact start instant.
func (s *Storage) GetBookingBySlot(ctx context.Context, roomID int64, start time.Time) (persistence.Booking, error) {
	row := s.db.QueryRowContext(ctx, selectBooking+` WHERE room_id = ? AND start_at = ?`,
		roomID, formatTime(start))
	return scanBooking(row)
}

// ListBookings returns bookings matching the filter in insertion order.
func (s *Storage) ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]persistence.Booking, error) {
	query := selectBooking
	var (
		clauses []string
		args    []any
	)
	if filter.RoomID != nil {
		clauses = append(clauses, "room_id = ?")
		args = append(args, *filter.RoomID)
	}
	// Time columns hold the fixed-width timeLayout format, so plain string
	// comparison matches the memory backend to the nanosecond.
	if filter.EndsAtOrAfter != nil {
		clauses = append(clauses, "end_at >= ?")
		args = append(args, formatTime(*filter.EndsAtOrAfter))
	}
	if filter.StartsAtOrBefore != nil {
		clauses = append(clauses, "start_at <= ?")
		args = append(args, formatTime(*filter.StartsAtOrBefore))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []persistence.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return bookings, nil
}

// DeleteBooking removes a booking by ID.
func (s *Storage) DeleteBooking(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: booking delete rows: %w", err)
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

const selectBooking = `
	SELECT id, room_id, room_name, color, start_at, duration_ns,
		booker_name, booker_email, description, created_at, updated_at
	FROM bookings`

func scanBooking(row rowScanner) (persistence.Booking, error) {
	var (
		booking                       persistence.Booking
		startAt, createdAt, updatedAt string
		durationNS                    int64
	)
	err := row.Scan(&booking.ID, &booking.RoomID, &booking.RoomName, &booking.Color,
		&startAt, &durationNS, &booking.Name, &booking.Email, &booking.Description,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Booking{}, persistence.ErrNotFound
		}
		return persistence.Booking{}, mapError(err)
	}

	booking.Duration = time.Duration(durationNS)
	if booking.Start, err = parseTime(startAt); err != nil {
		return persistence.Booking{}, err
	}
	if booking.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Booking{}, err
	}
	if booking.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return persistence.Booking{}, err
	}
	return booking, nil
}
