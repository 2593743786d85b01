package http

import (
	"net/http"

	"eventhub-backend/internal/service"
)

type TeamHandler struct {
	teams service.TeamService
}

func NewTeamHandler(teams service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

type createTeamRequest struct {
	Name string `json:"name"`
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	team, err := h.teams.CreateTeam(r.Context(), UserIDFromContext(r.Context()), eventID, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, team)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	team, err := h.teams.GetTeam(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, team)
}

func (h *TeamHandler) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	teams, err := h.teams.ListEventTeams(r.Context(), eventID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, teams)
}

func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	members, err := h.teams.ListTeamMembers(r.Context(), teamID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, members)
}
