package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"eventhub-backend/internal/domain"
)

// pathID parses the named path variable as an int32 id.
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.E(domain.CodeInvalidArgument, "invalid "+name)
	}
	return int32(id), nil
}

// scopeRef is the wire shape for a scope reference.
type scopeRef struct {
	Type string `json:"type"`
	ID   int32  `json:"id"`
}

func (s scopeRef) domain() (domain.Scope, error) {
	switch domain.ScopeType(s.Type) {
	case domain.ScopeOrg, domain.ScopeEvent, domain.ScopeTeam:
	default:
		return domain.Scope{}, domain.E(domain.CodeInvalidArgument, "scope type must be ORG, EVENT, or TEAM")
	}
	if s.ID <= 0 {
		return domain.Scope{}, domain.E(domain.CodeInvalidArgument, "scope id is required")
	}
	return domain.Scope{Type: domain.ScopeType(s.Type), ID: s.ID}, nil
}

// queryScope reads a scope from ?scope_type=&scope_id= query parameters.
func queryScope(r *http.Request) (domain.Scope, error) {
	id, err := strconv.ParseInt(r.URL.Query().Get("scope_id"), 10, 32)
	if err != nil {
		return domain.Scope{}, domain.E(domain.CodeInvalidArgument, "scope_id is required")
	}
	ref := scopeRef{Type: r.URL.Query().Get("scope_type"), ID: int32(id)}
	return ref.domain()
}
