package service

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
)

// AccessService resolves a caller's effective permission level, applying
// override rules instead of requiring duplicate role rows.
type AccessService interface {
	ResolveOrgRole(ctx context.Context, orgID, userID int32) (domain.OrgRole, error)
	ResolveEventPermission(ctx context.Context, orgID, eventID, userID int32) (domain.EventPermission, error)
	// RequireOrgAdmin fails with NOT_AUTHORIZED unless the user is an org
	// ADMIN or OWNER. It touches no other state.
	RequireOrgAdmin(ctx context.Context, orgID, userID int32) error
	// RequireEventAdmin fails with NOT_AUTHORIZED unless the user resolves
	// to EVENT_ADMIN for the event (org OWNER override included).
	RequireEventAdmin(ctx context.Context, orgID, eventID, userID int32) error
}

// InviteService owns the email-invite and shareable-link lifecycles for
// org, event, and team scopes.
type InviteService interface {
	CreateEmailInvite(ctx context.Context, issuerID int32, scope domain.Scope, email, message string, ttl time.Duration) (*domain.EmailInvite, error)
	AcceptEmailInvite(ctx context.Context, token string, userID int32, userEmail string) (*domain.EmailInvite, error)
	CancelEmailInvite(ctx context.Context, issuerID int32, token string) error
	ListEmailInvites(ctx context.Context, callerID int32, scope domain.Scope) ([]domain.EmailInvite, error)

	CreateInviteLink(ctx context.Context, issuerID int32, scope domain.Scope, note string, maxUses *int32, ttl time.Duration) (*domain.InviteLink, error)
	AcceptInviteLink(ctx context.Context, token string, userID int32) (*domain.InviteLink, error)
	RevokeInviteLink(ctx context.Context, issuerID int32, token string) error
	ListInviteLinks(ctx context.Context, callerID int32, scope domain.Scope) ([]domain.InviteLink, error)
}

// JoinRequestService implements the apply-then-review path used when a
// scope's join mode is REQUEST.
type JoinRequestService interface {
	CreateJoinRequest(ctx context.Context, userID int32, scope domain.Scope, message string) (*domain.JoinRequest, error)
	ReviewJoinRequest(ctx context.Context, reviewerID, requestID int32, decision domain.ReviewDecision) (*domain.JoinRequest, error)
	ListPendingRequests(ctx context.Context, callerID int32, scope domain.Scope) ([]domain.JoinRequest, error)
}

type OrganizationService interface {
	CreateOrganization(ctx context.Context, creatorID int32, org *domain.Organization) error
	GetOrganization(ctx context.Context, id int32) (*domain.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, callerID int32, org *domain.Organization) error
	ListMembers(ctx context.Context, callerID, orgID int32) ([]domain.OrgMembership, error)
	ChangeMemberRole(ctx context.Context, callerID, orgID, userID int32, role domain.OrgRole) error
	RemoveMember(ctx context.Context, callerID, orgID, userID int32) error
	ListMyOrganizations(ctx context.Context, userID int32) ([]domain.Organization, []domain.OrgMembership, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, callerID int32, event *domain.Event) error
	GetEvent(ctx context.Context, id int32) (*domain.Event, error)
	ListOrgEvents(ctx context.Context, orgID int32) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, callerID int32, event *domain.Event) error
	// Register self-registers the caller when the event's join mode is OPEN.
	Register(ctx context.Context, eventID, userID int32) (*domain.EventParticipant, error)
	CancelRegistration(ctx context.Context, eventID, userID int32) error
	AddStaff(ctx context.Context, callerID, eventID, userID int32, role domain.StaffRole) error
	RemoveStaff(ctx context.Context, callerID, eventID, userID int32) error
	ListStaff(ctx context.Context, callerID, eventID int32) ([]domain.EventStaffMembership, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, creatorID, eventID int32, name string) (*domain.Team, error)
	GetTeam(ctx context.Context, id int32) (*domain.Team, error)
	ListEventTeams(ctx context.Context, eventID int32) ([]domain.Team, error)
	ListTeamMembers(ctx context.Context, teamID int32) ([]domain.TeamMembership, error)
}

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// EmailService is the outbound notification sender. Sends are best-effort:
// a failure never rolls back the operation that triggered it.
type EmailService interface {
	SendInvitation(ctx context.Context, email, scopeName, token, message string) error
	SendRequestDecision(ctx context.Context, email, scopeName string, approved bool) error
}
