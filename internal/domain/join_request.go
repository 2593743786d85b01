package domain

import "time"

type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "PENDING"
	JoinRequestStatusApproved JoinRequestStatus = "APPROVED"
	JoinRequestStatusRejected JoinRequestStatus = "REJECTED"
)

type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "APPROVE"
	ReviewDeny    ReviewDecision = "DENY"
)

// JoinRequest is the "apply, then an admin reviews" path into an org or
// event. At most one PENDING request per (scope, user); review fields are
// stamped exactly once on the transition out of PENDING.
type JoinRequest struct {
	ID        int32             `json:"id"`
	Scope     Scope             `json:"scope"`
	UserID    int32             `json:"user_id"`
	Message   string            `json:"message"`
	Status    JoinRequestStatus `json:"status"`
	CreatedOn time.Time         `json:"created_on"`

	ReviewedBy *int32     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}
