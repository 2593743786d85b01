package repository

import (
	"context"
	"errors"
	"time"

	"eventhub-backend/internal/domain"
)

// Storage-level sentinels. Implementations translate driver errors into
// these so services never inspect infrastructure error codes.
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate is returned when an insert loses a unique-constraint
	// race. It is the final arbiter for concurrent duplicate submissions.
	ErrDuplicate = errors.New("repository: duplicate")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
	List(ctx context.Context) ([]domain.Organization, error)
}

type MembershipRepository interface {
	// Add inserts a membership row; ErrDuplicate when one already exists.
	Add(ctx context.Context, m *domain.OrgMembership) error
	Get(ctx context.Context, orgID, userID int32) (*domain.OrgMembership, error)
	UpdateRole(ctx context.Context, orgID, userID int32, role domain.OrgRole) error
	Remove(ctx context.Context, orgID, userID int32) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.OrgMembership, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.OrgMembership, error)
	CountByRole(ctx context.Context, orgID int32, role domain.OrgRole) (int32, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	GetBySlug(ctx context.Context, orgID int32, slug string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	ListByOrg(ctx context.Context, orgID int32) ([]domain.Event, error)
}

type ParticipantRepository interface {
	Add(ctx context.Context, p *domain.EventParticipant) error
	Get(ctx context.Context, eventID, userID int32) (*domain.EventParticipant, error)
	UpdateStatus(ctx context.Context, eventID, userID int32, status domain.ParticipantStatus) error
	ListByEvent(ctx context.Context, eventID int32) ([]domain.EventParticipant, error)
	CountActive(ctx context.Context, eventID int32) (int32, error)
}

type StaffRepository interface {
	Add(ctx context.Context, m *domain.EventStaffMembership) error
	Get(ctx context.Context, eventID, userID int32) (*domain.EventStaffMembership, error)
	Remove(ctx context.Context, eventID, userID int32) error
	ListByEvent(ctx context.Context, eventID int32) ([]domain.EventStaffMembership, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id int32) (*domain.Team, error)
	ListByEvent(ctx context.Context, eventID int32) ([]domain.Team, error)
	AddMember(ctx context.Context, m *domain.TeamMembership) error
	GetMember(ctx context.Context, teamID, userID int32) (*domain.TeamMembership, error)
	ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMembership, error)
}

type EmailInviteRepository interface {
	Create(ctx context.Context, invite *domain.EmailInvite) error
	GetByToken(ctx context.Context, token string) (*domain.EmailInvite, error)
	// GetPending finds the outstanding invite for (scope, email), if any.
	GetPending(ctx context.Context, scope domain.Scope, email string) (*domain.EmailInvite, error)
	// MarkAccepted flips PENDING -> ACCEPTED. ErrNotFound when the invite
	// is no longer PENDING; the conditional update is the race arbiter.
	MarkAccepted(ctx context.Context, id, userID int32, at time.Time) error
	// MarkCancelled flips PENDING -> CANCELLED under the same condition.
	MarkCancelled(ctx context.Context, id int32) error
	ListByScope(ctx context.Context, scope domain.Scope) ([]domain.EmailInvite, error)
	// ExpirePending marks PENDING invites whose deadline passed as EXPIRED
	// and returns the number of rows affected.
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

type InviteLinkRepository interface {
	Create(ctx context.Context, link *domain.InviteLink) error
	GetByToken(ctx context.Context, token string) (*domain.InviteLink, error)
	// Consume atomically increments uses iff the link is PENDING, unexpired
	// at now, and under its usage cap. ErrNotFound when the predicate no
	// longer holds; callers re-read to classify the refusal.
	Consume(ctx context.Context, token string, now time.Time) (*domain.InviteLink, error)
	Revoke(ctx context.Context, id int32) error
	ListByScope(ctx context.Context, scope domain.Scope) ([]domain.InviteLink, error)
	// RevokeExpired revokes PENDING links whose deadline passed.
	RevokeExpired(ctx context.Context, now time.Time) (int64, error)
}

type JoinRequestRepository interface {
	// Create inserts a request; ErrDuplicate when a PENDING request for
	// the same (scope, user) already exists.
	Create(ctx context.Context, req *domain.JoinRequest) error
	GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error)
	GetPending(ctx context.Context, scope domain.Scope, userID int32) (*domain.JoinRequest, error)
	// MarkReviewed stamps status/reviewedBy/reviewedAt iff still PENDING.
	// ErrNotFound when the request was already decided.
	MarkReviewed(ctx context.Context, id int32, status domain.JoinRequestStatus, reviewerID int32, at time.Time) error
	ListPendingByScope(ctx context.Context, scope domain.Scope) ([]domain.JoinRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// Repos bundles every repository bound to one database handle, either the
// root connection or a single transaction.
type Repos struct {
	Users         UserRepository
	Orgs          OrganizationRepository
	Memberships   MembershipRepository
	Events        EventRepository
	Participants  ParticipantRepository
	Staff         StaffRepository
	Teams         TeamRepository
	EmailInvites  EmailInviteRepository
	InviteLinks   InviteLinkRepository
	JoinRequests  JoinRequestRepository
	Notifications NotificationRepository
}

// Tx runs fn against transaction-bound repositories. All writes inside fn
// commit together or not at all.
type Tx interface {
	WithTx(ctx context.Context, fn func(r Repos) error) error
}
