package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/room-booking/internal/application"
)

type availabilityService interface {
	CheckAvailability(ctx context.Context, roomID int64, start time.Time, duration time.Duration) (application.Availability, error)
}

// AvailabilityHandler answers free/busy queries without mutating anything.
type AvailabilityHandler struct {
	service   availabilityService
	responder responder
	logger    *slog.Logger
}

func NewAvailabilityHandler(service availabilityService, logger *slog.Logger) *AvailabilityHandler {
	base := defaultLogger(logger)
	return &AvailabilityHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AvailabilityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AvailabilityHandler", operation, attrs...)
}

// Check handles GET /availability?room_id=&start=&duration_hours=.
func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()

	roomID, err := strconv.ParseInt(query.Get("room_id"), 10, 64)
	if err != nil || roomID <= 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRoomID)
		return
	}

	start, err := parseTimestamp(query.Get("start"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	hours, err := strconv.ParseFloat(query.Get("duration_hours"), 64)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errors.New("duration_hours must be a number"))
		return
	}

	logger := h.log(r.Context(), "Check", "room_id", roomID)

	availability, err := h.service.CheckAvailability(r.Context(), roomID, start, durationFromHours(hours))
	if err != nil {
		logger.ErrorContext(r.Context(), "availability check failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("free", availability.Free).InfoContext(r.Context(), "availability checked")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{
		Free:      availability.Free,
		Conflicts: toBookingDTOs(availability.Conflicts),
	})
}

type availabilityResponse struct {
	Free      bool         `json:"free"`
	Conflicts []bookingDTO `json:"conflicts,omitempty"`
}
