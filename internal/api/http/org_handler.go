package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"
)

type OrgHandler struct {
	orgs service.OrganizationService
}

func NewOrgHandler(orgs service.OrganizationService) *OrgHandler {
	return &OrgHandler{orgs: orgs}
}

type orgRequest struct {
	Slug              string `json:"slug"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	JoinMode          string `json:"join_mode"`
	AllowJoinRequests bool   `json:"allow_join_requests"`
}

func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orgRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	org := &domain.Organization{
		Slug:              req.Slug,
		Name:              req.Name,
		Description:       req.Description,
		JoinMode:          domain.JoinMode(req.JoinMode),
		AllowJoinRequests: req.AllowJoinRequests,
	}
	if err := h.orgs.CreateOrganization(r.Context(), UserIDFromContext(r.Context()), org); err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, org)
}

func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	org, err := h.orgs.GetOrganization(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, org)
}

func (h *OrgHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	org, err := h.orgs.GetOrganizationBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, org)
}

func (h *OrgHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req orgRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	org := &domain.Organization{
		ID:                id,
		Slug:              req.Slug,
		Name:              req.Name,
		Description:       req.Description,
		JoinMode:          domain.JoinMode(req.JoinMode),
		AllowJoinRequests: req.AllowJoinRequests,
	}
	if err := h.orgs.UpdateOrganization(r.Context(), UserIDFromContext(r.Context()), org); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, org)
}

func (h *OrgHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	members, err := h.orgs.ListMembers(r.Context(), UserIDFromContext(r.Context()), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, members)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h *OrgHandler) ChangeMemberRole(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	err = h.orgs.ChangeMemberRole(r.Context(), UserIDFromContext(r.Context()), orgID, userID, domain.OrgRole(req.Role))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, nil)
}

func (h *OrgHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	orgID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	userID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	err = h.orgs.RemoveMember(r.Context(), UserIDFromContext(r.Context()), orgID, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, nil)
}

func (h *OrgHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orgs, memberships, err := h.orgs.ListMyOrganizations(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, map[string]interface{}{
		"organizations": orgs,
		"memberships":   memberships,
	})
}
