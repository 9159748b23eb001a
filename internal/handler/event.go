package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventhub/eventhub-go/internal/middleware"
	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/service"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

// HandleList handles GET /api/v1/events requests.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	q := r.URL.Query()
	params := model.ListEventsParams{
		Title:    q.Get("title"),
		Date:     q.Get("date"),
		Location: q.Get("location"),
		Sort:     q.Get("sort"),
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
	}

	events, meta, err := h.service.List(r.Context(), caller, params)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.EventListResponse{
		Message: "Events info list",
		Data:    events,
		Meta:    meta,
	})
}

// HandleCreate handles POST /api/v1/events requests.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !checkValid(w, req) {
		return
	}

	event, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, model.EventResponse{
		Message: "Event added",
		Data:    *event,
	})
}

// HandleUpdate handles PUT /api/v1/events/{id} requests.
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !checkValid(w, req) {
		return
	}

	event, err := h.service.Update(r.Context(), caller, chi.URLParam(r, "id"), req)
	if err != nil {
		writeEventError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.EventResponse{
		Message: "Event info updated",
		Data:    *event,
	})
}

// HandleDelete handles DELETE /api/v1/events/{id} requests.
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	if err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeEventError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Event deleted"})
}

// writeEventError maps event service errors to their HTTP statuses.
func writeEventError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEventID):
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid event ID format"))
	case errors.Is(err, service.ErrEventNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse("Event not found"))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse("Forbidden"))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
