package http

import (
	"net/http"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/service"
)

type JoinRequestHandler struct {
	requests service.JoinRequestService
}

func NewJoinRequestHandler(requests service.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{requests: requests}
}

type createJoinRequestRequest struct {
	Scope   scopeRef `json:"scope"`
	Message string   `json:"message"`
}

func (h *JoinRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJoinRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	scope, err := req.Scope.domain()
	if err != nil {
		respondError(w, r, err)
		return
	}

	request, err := h.requests.CreateJoinRequest(r.Context(), UserIDFromContext(r.Context()), scope, req.Message)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondCreated(w, request)
}

type reviewRequest struct {
	Decision string `json:"decision"` // APPROVE or DENY
}

func (h *JoinRequestHandler) Review(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	request, err := h.requests.ReviewJoinRequest(
		r.Context(), UserIDFromContext(r.Context()),
		requestID, domain.ReviewDecision(req.Decision),
	)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, request)
}

func (h *JoinRequestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	scope, err := queryScope(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	requests, err := h.requests.ListPendingRequests(r.Context(), UserIDFromContext(r.Context()), scope)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, requests)
}
