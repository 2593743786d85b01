package domain

import "time"

type Event struct {
	ID          int32     `json:"id"`
	OrgID       int32     `json:"org_id"`
	Slug        string    `json:"slug"` // unique within the owning org
	Name        string    `json:"name"`
	Description string    `json:"description"`
	JoinMode    JoinMode  `json:"join_mode"`
	Capacity    int32     `json:"capacity"` // 0 means unlimited
	StartsOn    time.Time `json:"starts_on"`
	EndsOn      time.Time `json:"ends_on"`
	CreatedOn   time.Time `json:"created_on"`
}

type ParticipantStatus string

const (
	ParticipantRegistered ParticipantStatus = "REGISTERED"
	ParticipantWaitlisted ParticipantStatus = "WAITLISTED"
	ParticipantCancelled  ParticipantStatus = "CANCELLED"
)

// EventParticipant is the registration record for one user at one event.
type EventParticipant struct {
	EventID      int32             `json:"event_id"`
	UserID       int32             `json:"user_id"`
	Status       ParticipantStatus `json:"status"`
	RegisteredOn time.Time         `json:"registered_on"`
}

type StaffRole string

const (
	StaffRoleAdmin StaffRole = "ADMIN"
	StaffRoleJudge StaffRole = "JUDGE"
	StaffRoleStaff StaffRole = "STAFF"
)

// EventStaffMembership confers elevated permissions scoped to one event.
type EventStaffMembership struct {
	EventID int32     `json:"event_id"`
	UserID  int32     `json:"user_id"`
	Role    StaffRole `json:"role"`
	AddedOn time.Time `json:"added_on"`
}

// EventPermission is the resolved authority level for an event after the
// org-owner override is applied.
type EventPermission string

const (
	EventPermissionNone  EventPermission = "NONE"
	EventPermissionStaff EventPermission = "STAFF"
	EventPermissionAdmin EventPermission = "EVENT_ADMIN"
)
