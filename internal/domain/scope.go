package domain

// ScopeType identifies the kind of entity an invite, link, or join request
// is attached to.
type ScopeType string

const (
	ScopeOrg   ScopeType = "ORG"
	ScopeEvent ScopeType = "EVENT"
	ScopeTeam  ScopeType = "TEAM"
)

// Scope points at one organization, event, or team.
type Scope struct {
	Type ScopeType `json:"type"`
	ID   int32     `json:"id"`
}

func OrgScope(id int32) Scope   { return Scope{Type: ScopeOrg, ID: id} }
func EventScope(id int32) Scope { return Scope{Type: ScopeEvent, ID: id} }
func TeamScope(id int32) Scope  { return Scope{Type: ScopeTeam, ID: id} }
