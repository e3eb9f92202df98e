package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/room-booking/internal/application"
	"github.com/example/room-booking/internal/booking"
)

type eventService interface {
	ListEvents(ctx context.Context) ([]booking.DisplayEvent, error)
}

// EventHandler serves the projected calendar feed.
type EventHandler struct {
	service   eventService
	responder responder
	logger    *slog.Logger
}

func NewEventHandler(service eventService, logger *slog.Logger) *EventHandler {
	base := defaultLogger(logger)
	return &EventHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EventHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EventHandler", operation, attrs...)
}

// List handles GET /events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "event projection failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(events)).InfoContext(r.Context(), "events listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEventsResponse{Events: toEventDTOs(events)})
}

type listEventsResponse struct {
	Events []eventDTO `json:"events"`
}

type eventDTO struct {
	BookingID int64  `json:"booking_id"`
	RoomID    int64  `json:"room_id"`
	Title     string `json:"title"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Color     string `json:"color"`
}

func toEventDTOs(events []booking.DisplayEvent) []eventDTO {
	if len(events) == 0 {
		return nil
	}
	out := make([]eventDTO, 0, len(events))
	for _, event := range events {
		out = append(out, eventDTO{
			BookingID: event.BookingID,
			RoomID:    event.RoomID,
			Title:     event.Title,
			Start:     event.Start.UTC().Format(time.RFC3339Nano),
			End:       event.End.UTC().Format(time.RFC3339Nano),
			Color:     event.Color,
		})
	}
	return out
}
