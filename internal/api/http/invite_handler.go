package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"eventhub-backend/internal/service"
)

type InviteHandler struct {
	invites service.InviteService
}

func NewInviteHandler(invites service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type createEmailInviteRequest struct {
	Scope   scopeRef `json:"scope"`
	Email   string   `json:"email"`
	Message string   `json:"message"`
	TTLDays int      `json:"ttl_days"` // 0 applies the configured default
}

func (h *InviteHandler) CreateEmailInvite(w http.ResponseWriter, r *http.Request) {
	var req createEmailInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	scope, err := req.Scope.domain()
	if err != nil {
		respondError(w, r, err)
		return
	}

	invite, err := h.invites.CreateEmailInvite(
		r.Context(), UserIDFromContext(r.Context()),
		scope, req.Email, req.Message,
		time.Duration(req.TTLDays)*24*time.Hour,
	)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, invite)
}

func (h *InviteHandler) AcceptEmailInvite(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	invite, err := h.invites.AcceptEmailInvite(
		r.Context(), token,
		UserIDFromContext(r.Context()),
		UserEmailFromContext(r.Context()),
	)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, invite)
}

func (h *InviteHandler) CancelEmailInvite(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if err := h.invites.CancelEmailInvite(r.Context(), UserIDFromContext(r.Context()), token); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, nil)
}

func (h *InviteHandler) ListEmailInvites(w http.ResponseWriter, r *http.Request) {
	scope, err := queryScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	invites, err := h.invites.ListEmailInvites(r.Context(), UserIDFromContext(r.Context()), scope)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, invites)
}

type createInviteLinkRequest struct {
	Scope   scopeRef `json:"scope"`
	Note    string   `json:"note"`
	MaxUses *int32   `json:"max_uses"` // null means unlimited
	TTLDays int      `json:"ttl_days"`
}

func (h *InviteHandler) CreateInviteLink(w http.ResponseWriter, r *http.Request) {
	var req createInviteLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	scope, err := req.Scope.domain()
	if err != nil {
		respondError(w, r, err)
		return
	}

	link, err := h.invites.CreateInviteLink(
		r.Context(), UserIDFromContext(r.Context()),
		scope, req.Note, req.MaxUses,
		time.Duration(req.TTLDays)*24*time.Hour,
	)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, link)
}

func (h *InviteHandler) AcceptInviteLink(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	link, err := h.invites.AcceptInviteLink(r.Context(), token, UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, link)
}

func (h *InviteHandler) RevokeInviteLink(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if err := h.invites.RevokeInviteLink(r.Context(), UserIDFromContext(r.Context()), token); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, nil)
}

func (h *InviteHandler) ListInviteLinks(w http.ResponseWriter, r *http.Request) {
	scope, err := queryScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	links, err := h.invites.ListInviteLinks(r.Context(), UserIDFromContext(r.Context()), scope)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, links)
}
