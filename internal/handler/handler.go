// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the organizer service.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shivanand-hulikatti/event-organizer/internal/logger"
	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/Shivanand-hulikatti/event-organizer/internal/service"
	"github.com/Shivanand-hulikatti/event-organizer/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	maxBodyBytes   = 1 << 20  // 1 MB
	maxUploadBytes = 10 << 20 // 10 MB
)

// EventHandler holds all HTTP handlers for the organizer API.
type EventHandler struct {
	svc *service.OrganizerService
	log *logger.Logger
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.OrganizerService, log *logger.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: log}
}

// Routes returns the API router. Mount it behind OrganizerSession.
func (h *EventHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Post("/bulk/status", h.BulkUpdateStatus)
		r.Post("/bulk/delete", h.BulkDelete)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetEvent)
			r.Patch("/", h.UpdateEvent)
			r.Delete("/", h.DeleteEvent)
			r.Post("/duplicate", h.DuplicateEvent)
			r.Post("/publish", h.PublishEvent)
			r.Get("/analytics", h.GetAnalytics)
			r.Post("/image", h.UploadImage)

			r.Post("/tickets", h.CreateTicketType)
			r.Patch("/tickets/{ticketID}", h.UpdateTicketType)
			r.Delete("/tickets/{ticketID}", h.DeleteTicketType)
			r.Post("/tickets/{ticketID}/sales", h.RecordSale)

			r.Get("/attendees", h.ListAttendees)
			r.Patch("/attendees/{attendeeID}", h.UpdateAttendeeStatus)
		})
	})

	r.Post("/uploads/image", h.UploadImage)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/stats", h.DashboardStats)
		r.Get("/activity", h.RecentActivity)
	})

	return r
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.Result{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.Result{Success: false, Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// fail maps a service error to a status code and a Result envelope.
// Unexpected errors are logged and reported with the generic fallback.
func (h *EventHandler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTicketTypeHasSales),
		errors.Is(err, service.ErrSoldOut),
		errors.Is(err, service.ErrTicketTypeInactive):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoOrganizer):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.WithContext(r.Context()).Error(fallback, zap.Error(err))
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// ─── Events ───────────────────────────────────────────────────────────────────

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.GetMyEvents(r.Context())
	if err != nil {
		h.fail(w, r, err, "failed to list events")
		return
	}
	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.OrganizerEvent{}
	}
	writeOK(w, http.StatusOK, events)
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.EventFormData
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "failed to create event")
		return
	}
	writeOK(w, http.StatusCreated, event)
}

// GetEvent handles GET /events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "failed to get event")
		return
	}
	writeOK(w, http.StatusOK, event)
}

// UpdateEvent handles PATCH /events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.EventPatch
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err, "failed to update event")
		return
	}
	writeOK(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, "failed to delete event")
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// DuplicateEvent handles POST /events/{id}/duplicate
func (h *EventHandler) DuplicateEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.DuplicateEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "failed to duplicate event")
		return
	}
	writeOK(w, http.StatusCreated, event)
}

// PublishEvent handles POST /events/{id}/publish
func (h *EventHandler) PublishEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.PublishEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "failed to publish event")
		return
	}
	writeOK(w, http.StatusOK, event)
}

// BulkUpdateStatus handles POST /events/bulk/status
func (h *EventHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.BulkStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	n, err := h.svc.BulkUpdateEventStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		h.fail(w, r, err, "failed to update events")
		return
	}
	writeOK(w, http.StatusOK, map[string]int{"updated": n})
}

// BulkDelete handles POST /events/bulk/delete
func (h *EventHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req model.BulkDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	n, err := h.svc.BulkDeleteEvents(r.Context(), req.IDs)
	if err != nil {
		h.fail(w, r, err, "failed to delete events")
		return
	}
	writeOK(w, http.StatusOK, map[string]int{"deleted": n})
}

// GetAnalytics handles GET /events/{id}/analytics
func (h *EventHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.GetEventAnalytics(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "failed to load analytics")
		return
	}
	writeOK(w, http.StatusOK, report)
}

// UploadImage handles POST /events/{id}/image and POST /uploads/image.
// The multipart field is "file". The storage result is passed through as-is;
// an unknown or foreign event id is rejected before anything is stored.
func (h *EventHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	res, err := h.svc.UploadImage(r.Context(), storage.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "failed to upload image")
		return
	}

	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, res)
}
