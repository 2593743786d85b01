package domain

import "time"

// JoinMode controls how a user may become a member of an org or event.
type JoinMode string

const (
	JoinModeOpen       JoinMode = "OPEN"
	JoinModeRequest    JoinMode = "REQUEST"
	JoinModeInviteOnly JoinMode = "INVITE_ONLY"
)

type Organization struct {
	ID          int32    `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	JoinMode    JoinMode `json:"join_mode"`
	// AllowJoinRequests may only be true while JoinMode is REQUEST.
	AllowJoinRequests bool      `json:"allow_join_requests"`
	CreatedOn         time.Time `json:"created_on"`
}

type OrgRole string

const (
	OrgRoleNone   OrgRole = "NONE"
	OrgRoleOwner  OrgRole = "OWNER"
	OrgRoleAdmin  OrgRole = "ADMIN"
	OrgRoleMember OrgRole = "MEMBER"
)

// OrgMembership links a user to an organization. One row per (org, user).
type OrgMembership struct {
	OrgID    int32     `json:"org_id"`
	UserID   int32     `json:"user_id"`
	Role     OrgRole   `json:"role"`
	JoinedOn time.Time `json:"joined_on"`
}
