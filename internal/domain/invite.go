package domain

import "time"

type InviteStatus string

const (
	InviteStatusPending   InviteStatus = "PENDING"
	InviteStatusAccepted  InviteStatus = "ACCEPTED"
	InviteStatusCancelled InviteStatus = "CANCELLED"
	InviteStatusExpired   InviteStatus = "EXPIRED"
)

// EmailInvite targets one recipient address in one scope. It transitions
// PENDING -> ACCEPTED exactly once and never reverts.
type EmailInvite struct {
	ID        int32        `json:"id"`
	Scope     Scope        `json:"scope"`
	Email     string       `json:"email"` // stored normalized
	Token     string       `json:"token"`
	Status    InviteStatus `json:"status"`
	Message   string       `json:"message"`
	ExpiresAt *time.Time   `json:"expires_at"` // nil means never expires
	CreatedBy int32        `json:"created_by"`
	CreatedOn time.Time    `json:"created_on"`

	AcceptedBy *int32     `json:"accepted_by,omitempty"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

// Expired reports whether the invite's deadline has passed at now.
func (i *EmailInvite) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !i.ExpiresAt.After(now)
}

type LinkStatus string

const (
	LinkStatusPending LinkStatus = "PENDING"
	LinkStatusRevoked LinkStatus = "REVOKED"
)

// InviteLink is a shareable bearer token for one scope, bounded by an
// optional expiry and usage cap.
type InviteLink struct {
	ID        int32      `json:"id"`
	Scope     Scope      `json:"scope"`
	Token     string     `json:"token"`
	Status    LinkStatus `json:"status"`
	MaxUses   *int32     `json:"max_uses"` // nil means unlimited
	Uses      int32      `json:"uses"`
	Note      string     `json:"note"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedBy int32      `json:"created_by"`
	CreatedOn time.Time  `json:"created_on"`
}

// Expired reports whether the link's deadline has passed at now.
func (l *InviteLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

// Spent reports whether the usage cap has been reached.
func (l *InviteLink) Spent() bool {
	return l.MaxUses != nil && l.Uses >= *l.MaxUses
}
