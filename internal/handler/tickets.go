package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/go-chi/chi/v5"
)

// CreateTicketType handles POST /events/{id}/tickets
func (h *EventHandler) CreateTicketType(w http.ResponseWriter, r *http.Request) {
	var req model.TicketTypeInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ticket, err := h.svc.CreateTicketType(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err, "failed to create ticket type")
		return
	}
	writeOK(w, http.StatusCreated, ticket)
}

// UpdateTicketType handles PATCH /events/{id}/tickets/{ticketID}
func (h *EventHandler) UpdateTicketType(w http.ResponseWriter, r *http.Request) {
	var req model.TicketTypePatch
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ticket, err := h.svc.UpdateTicketType(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "ticketID"), req)
	if err != nil {
		h.fail(w, r, err, "failed to update ticket type")
		return
	}
	writeOK(w, http.StatusOK, ticket)
}

// DeleteTicketType handles DELETE /events/{id}/tickets/{ticketID}
func (h *EventHandler) DeleteTicketType(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTicketType(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "ticketID")); err != nil {
		h.fail(w, r, err, "failed to delete ticket type")
		return
	}
	writeOK(w, http.StatusOK, nil)
}

// RecordSale handles POST /events/{id}/tickets/{ticketID}/sales
func (h *EventHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req model.AttendeeInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	attendee, err := h.svc.RecordTicketSale(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "ticketID"), req)
	if err != nil {
		h.fail(w, r, err, "failed to record sale")
		return
	}
	writeOK(w, http.StatusCreated, attendee)
}

// ListAttendees handles GET /events/{id}/attendees
func (h *EventHandler) ListAttendees(w http.ResponseWriter, r *http.Request) {
	attendees, err := h.svc.GetEventAttendees(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "failed to list attendees")
		return
	}
	writeOK(w, http.StatusOK, attendees)
}

// UpdateAttendeeStatus handles PATCH /events/{id}/attendees/{attendeeID}
func (h *EventHandler) UpdateAttendeeStatus(w http.ResponseWriter, r *http.Request) {
	var req model.AttendeeStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	attendee, err := h.svc.UpdateAttendeeStatus(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "attendeeID"), req.Status)
	if err != nil {
		h.fail(w, r, err, "failed to update attendee")
		return
	}
	writeOK(w, http.StatusOK, attendee)
}

// ─── Dashboard ────────────────────────────────────────────────────────────────

// DashboardStats handles GET /dashboard/stats
func (h *EventHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetDashboardStats(r.Context())
	if err != nil {
		h.fail(w, r, err, "failed to load dashboard stats")
		return
	}
	writeOK(w, http.StatusOK, stats)
}

// RecentActivity handles GET /dashboard/activity
func (h *EventHandler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.GetRecentActivity(r.Context())
	if err != nil {
		h.fail(w, r, err, "failed to load activity")
		return
	}
	if entries == nil {
		entries = []model.RecentActivity{}
	}
	writeOK(w, http.StatusOK, entries)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
