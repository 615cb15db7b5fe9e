package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/speeddial"
)

const eventBuffer = 64

// EventDTO is a registry change streamed to SSE clients.
type EventDTO struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Directory string    `json:"directory,omitempty"`
	Code      string    `json:"code,omitempty"`
	Number    string    `json:"number,omitempty"`
	Name      string    `json:"name,omitempty"`
	Time      time.Time `json:"time"`
	Seq       uint64    `json:"seq"`
}

// NewEventDTO converts a registry event.
func NewEventDTO(e speeddial.Event) EventDTO {
	return EventDTO{
		ID:        e.ID.String(),
		Kind:      string(e.Kind),
		Directory: e.Directory,
		Code:      e.Code,
		Number:    e.Number,
		Name:      e.Name,
		Time:      e.Time,
		Seq:       e.Seq,
	}
}

// EventsHandler streams registry changes over server-sent events.
type EventsHandler struct {
	service *service.SpeedDial
}

// NewEventsHandler registers the event stream on api.
func NewEventsHandler(api huma.API, service *service.SpeedDial) *EventsHandler {
	h := &EventsHandler{service: service}

	sse.Register(api, huma.Operation{
		OperationID: "stream-events",
		Method:      http.MethodGet,
		Path:        "/events",
		Summary:     "Stream registry changes (SSE)",
		Tags:        []string{"registry"},
	}, map[string]any{
		"message": EventDTO{},
	}, h.handleEvents)

	return h
}

// handleEvents handles the stream-events operation.
func (h *EventsHandler) handleEvents(ctx context.Context, _ *struct{}, send sse.Sender) {
	events := make(chan speeddial.Event, eventBuffer)
	unsubscribe := h.service.Subscribe(func(e speeddial.Event) {
		select {
		case events <- e:
		default:
			// Slow clients miss events rather than block registry writers.
			// The gap shows in the seq field.
			slog.Warn("Dropping event for slow client", "event_id", e.ID, "seq", e.Seq)
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case e := <-events:
			if err := send(sse.Message{ID: int(e.Seq), Data: NewEventDTO(e)}); err != nil {
				return
			}
		}
	}
}
