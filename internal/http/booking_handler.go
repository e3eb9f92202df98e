package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/room-booking/internal/application"
)

type bookingService interface {
	CreateBooking(ctx context.Context, params application.CreateBookingParams) (application.Booking, error)
	UpdateBooking(ctx context.Context, params application.UpdateBookingParams) (application.Booking, error)
	DeleteBooking(ctx context.Context, bookingID int64) error
	GetBooking(ctx context.Context, bookingID int64) (application.Booking, error)
	ListBookings(ctx context.Context) ([]application.Booking, error)
	BookingsForRoom(ctx context.Context, roomID int64) ([]application.Booking, error)
}

// BookingHandler serves reservation CRUD for anonymous bookers.
type BookingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewBookingHandler(service bookingService, logger *slog.Logger) *BookingHandler {
	base := defaultLogger(logger)
	return &BookingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *BookingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "BookingHandler", operation, attrs...)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "malformed booking request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Create", "room_id", input.RoomID)

	created, err := h.service.CreateBooking(r.Context(), application.CreateBookingParams{Input: input})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("booking_id", created.ID).InfoContext(r.Context(), "booking created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, bookingResponse{Booking: toBookingDTO(created)})
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || bookingID <= 0 {
		h.log(r.Context(), "Update", "error_kind", "bad_request").ErrorContext(r.Context(), "missing booking id for update")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	var req bookingPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "booking_id", bookingID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode booking update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		h.log(r.Context(), "Update", "booking_id", bookingID, "error_kind", "bad_request").ErrorContext(r.Context(), "malformed booking update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "Update", "booking_id", bookingID)

	updated, err := h.service.UpdateBooking(r.Context(), application.UpdateBookingParams{
		BookingID: bookingID,
		Patch:     patch,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "booking update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingResponse{Booking: toBookingDTO(updated)})
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || bookingID <= 0 {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").ErrorContext(r.Context(), "missing booking id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	logger := h.log(r.Context(), "Delete", "booking_id", bookingID)
	if err := h.service.DeleteBooking(r.Context(), bookingID); err != nil {
		logger.ErrorContext(r.Context(), "booking delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "booking deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	bookingID, ok := BookingIDFromContext(r.Context())
	if !ok || bookingID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidBookingID)
		return
	}

	logger := h.log(r.Context(), "Get", "booking_id", bookingID)
	found, err := h.service.GetBooking(r.Context(), bookingID)
	if err != nil {
		logger.ErrorContext(r.Context(), "booking lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, bookingResponse{Booking: toBookingDTO(found)})
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	bookings, err := h.service.ListBookings(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "booking list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(bookings)).InfoContext(r.Context(), "bookings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: toBookingDTOs(bookings)})
}

// ListForRoom serves the bookings of a single room.
func (h *BookingHandler) ListForRoom(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomID, ok := RoomIDFromContext(r.Context())
	if !ok || roomID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRoomID)
		return
	}

	logger := h.log(r.Context(), "ListForRoom", "room_id", roomID)
	bookings, err := h.service.BookingsForRoom(r.Context(), roomID)
	if err != nil {
		logger.ErrorContext(r.Context(), "room booking list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(bookings)).InfoContext(r.Context(), "room bookings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listBookingsResponse{Bookings: toBookingDTOs(bookings)})
}

type bookingRequest struct {
	RoomID        int64   `json:"room_id"`
	Start         string  `json:"start"`
	DurationHours float64 `json:"duration_hours"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Description   string  `json:"description"`
}

func (r bookingRequest) toInput() (application.BookingInput, error) {
	start, err := parseTimestamp(r.Start)
	if err != nil {
		return application.BookingInput{}, err
	}
	return application.BookingInput{
		RoomID:      r.RoomID,
		Start:       start,
		Duration:    durationFromHours(r.DurationHours),
		Name:        strings.TrimSpace(r.Name),
		Email:       strings.TrimSpace(r.Email),
		Description: strings.TrimSpace(r.Description),
	}, nil
}

type bookingPatchRequest struct {
	Start         *string  `json:"start"`
	DurationHours *float64 `json:"duration_hours"`
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	Description   *string  `json:"description"`
}

func (r bookingPatchRequest) toPatch() (application.BookingPatch, error) {
	var patch application.BookingPatch
	if r.Start != nil {
		start, err := parseTimestamp(*r.Start)
		if err != nil {
			return application.BookingPatch{}, err
		}
		patch.Start = &start
	}
	if r.DurationHours != nil {
		duration := durationFromHours(*r.DurationHours)
		patch.Duration = &duration
	}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		patch.Name = &trimmed
	}
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		patch.Email = &trimmed
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		patch.Description = &trimmed
	}
	return patch, nil
}

type bookingResponse struct {
	Booking bookingDTO `json:"booking"`
}

type listBookingsResponse struct {
	Bookings []bookingDTO `json:"bookings"`
}

type bookingDTO struct {
	ID            int64   `json:"id"`
	RoomID        int64   `json:"room_id"`
	RoomName      string  `json:"room_name"`
	Color         string  `json:"color"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	DurationHours float64 `json:"duration_hours"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Description   string  `json:"description,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func toBookingDTO(b application.Booking) bookingDTO {
	return bookingDTO{
		ID:            b.ID,
		RoomID:        b.RoomID,
		RoomName:      b.RoomName,
		Color:         b.Color,
		Start:         b.Start.UTC().Format(time.RFC3339Nano),
		End:           b.End().UTC().Format(time.RFC3339Nano),
		DurationHours: b.Duration.Hours(),
		Name:          b.Name,
		Email:         b.Email,
		Description:   b.Description,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toBookingDTOs(bookings []application.Booking) []bookingDTO {
	if len(bookings) == 0 {
		return nil
	}
	out := make([]bookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b))
	}
	return out
}

func parseTimestamp(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("start timestamp is required")
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, errors.New("start must be an RFC 3339 timestamp")
	}
	return parsed.UTC(), nil
}

func durationFromHours(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
