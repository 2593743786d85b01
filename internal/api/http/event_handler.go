package http

import (
	"net/http"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"
)

type EventHandler struct {
	events service.EventService
}

func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

type eventRequest struct {
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JoinMode    string    `json:"join_mode"`
	Capacity    int32     `json:"capacity"`
	StartsOn    time.Time `json:"starts_on"`
	EndsOn      time.Time `json:"ends_on"`
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	event := &domain.Event{
		OrgID:       orgID,
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		JoinMode:    domain.JoinMode(req.JoinMode),
		Capacity:    req.Capacity,
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
	}
	if err := h.events.CreateEvent(r.Context(), UserIDFromContext(r.Context()), event); err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	event, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, event)
}

func (h *EventHandler) ListByOrg(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	events, err := h.events.ListOrgEvents(r.Context(), orgID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, events)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	event := &domain.Event{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		JoinMode:    domain.JoinMode(req.JoinMode),
		Capacity:    req.Capacity,
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
	}
	if err := h.events.UpdateEvent(r.Context(), UserIDFromContext(r.Context()), event); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, event)
}

func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	participant, err := h.events.Register(r.Context(), id, UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, participant)
}

func (h *EventHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.events.CancelRegistration(r.Context(), id, UserIDFromContext(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, nil)
}

type staffRequest struct {
	UserID int32  `json:"user_id"`
	Role   string `json:"role"`
}

func (h *EventHandler) AddStaff(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req staffRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	err = h.events.AddStaff(r.Context(), UserIDFromContext(r.Context()), eventID, req.UserID, domain.StaffRole(req.Role))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, nil)
}

func (h *EventHandler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	err = h.events.RemoveStaff(r.Context(), UserIDFromContext(r.Context()), eventID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, nil)
}

func (h *EventHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	staff, err := h.events.ListStaff(r.Context(), UserIDFromContext(r.Context()), eventID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, staff)
}
