package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockOrgRepo
type MockOrgRepo struct {
	mock.Mock
}

func (m *MockOrgRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrgRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrgRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Add(ctx context.Context, mem *domain.OrgMembership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}
func (m *MockMembershipRepo) Get(ctx context.Context, orgID, userID int32) (*domain.OrgMembership, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgMembership), args.Error(1)
}
func (m *MockMembershipRepo) UpdateRole(ctx context.Context, orgID, userID int32, role domain.OrgRole) error {
	args := m.Called(ctx, orgID, userID, role)
	return args.Error(0)
}
func (m *MockMembershipRepo) Remove(ctx context.Context, orgID, userID int32) error {
	args := m.Called(ctx, orgID, userID)
	return args.Error(0)
}
func (m *MockMembershipRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.OrgMembership, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.OrgMembership), args.Error(1)
}
func (m *MockMembershipRepo) ListByUser(ctx context.Context, userID int32) ([]domain.OrgMembership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.OrgMembership), args.Error(1)
}
func (m *MockMembershipRepo) CountByRole(ctx context.Context, orgID int32, role domain.OrgRole) (int32, error) {
	args := m.Called(ctx, orgID, role)
	return args.Get(0).(int32), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) GetBySlug(ctx context.Context, orgID int32, slug string) (*domain.Event, error) {
	args := m.Called(ctx, orgID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) ListByOrg(ctx context.Context, orgID int32) ([]domain.Event, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockParticipantRepo
type MockParticipantRepo struct {
	mock.Mock
}

func (m *MockParticipantRepo) Add(ctx context.Context, p *domain.EventParticipant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockParticipantRepo) Get(ctx context.Context, eventID, userID int32) (*domain.EventParticipant, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventParticipant), args.Error(1)
}
func (m *MockParticipantRepo) UpdateStatus(ctx context.Context, eventID, userID int32, status domain.ParticipantStatus) error {
	args := m.Called(ctx, eventID, userID, status)
	return args.Error(0)
}
func (m *MockParticipantRepo) ListByEvent(ctx context.Context, eventID int32) ([]domain.EventParticipant, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.EventParticipant), args.Error(1)
}
func (m *MockParticipantRepo) CountActive(ctx context.Context, eventID int32) (int32, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int32), args.Error(1)
}

// MockStaffRepo
type MockStaffRepo struct {
	mock.Mock
}

func (m *MockStaffRepo) Add(ctx context.Context, mem *domain.EventStaffMembership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}
func (m *MockStaffRepo) Get(ctx context.Context, eventID, userID int32) (*domain.EventStaffMembership, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventStaffMembership), args.Error(1)
}
func (m *MockStaffRepo) Remove(ctx context.Context, eventID, userID int32) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}
func (m *MockStaffRepo) ListByEvent(ctx context.Context, eventID int32) ([]domain.EventStaffMembership, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.EventStaffMembership), args.Error(1)
}

// MockTeamRepo
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) ListByEvent(ctx context.Context, eventID int32) ([]domain.Team, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.Team), args.Error(1)
}
func (m *MockTeamRepo) AddMember(ctx context.Context, mem *domain.TeamMembership) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}
func (m *MockTeamRepo) GetMember(ctx context.Context, teamID, userID int32) (*domain.TeamMembership, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMembership), args.Error(1)
}
func (m *MockTeamRepo) ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMembership, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]domain.TeamMembership), args.Error(1)
}

// MockEmailInviteRepo
type MockEmailInviteRepo struct {
	mock.Mock
}

func (m *MockEmailInviteRepo) Create(ctx context.Context, invite *domain.EmailInvite) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}
func (m *MockEmailInviteRepo) GetByToken(ctx context.Context, token string) (*domain.EmailInvite, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailInvite), args.Error(1)
}
func (m *MockEmailInviteRepo) GetPending(ctx context.Context, scope domain.Scope, email string) (*domain.EmailInvite, error) {
	args := m.Called(ctx, scope, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailInvite), args.Error(1)
}
func (m *MockEmailInviteRepo) MarkAccepted(ctx context.Context, id, userID int32, at time.Time) error {
	args := m.Called(ctx, id, userID, at)
	return args.Error(0)
}
func (m *MockEmailInviteRepo) MarkCancelled(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEmailInviteRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.EmailInvite, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]domain.EmailInvite), args.Error(1)
}
func (m *MockEmailInviteRepo) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockInviteLinkRepo
type MockInviteLinkRepo struct {
	mock.Mock
}

func (m *MockInviteLinkRepo) Create(ctx context.Context, link *domain.InviteLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}
func (m *MockInviteLinkRepo) GetByToken(ctx context.Context, token string) (*domain.InviteLink, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteLink), args.Error(1)
}
func (m *MockInviteLinkRepo) Consume(ctx context.Context, token string, now time.Time) (*domain.InviteLink, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InviteLink), args.Error(1)
}
func (m *MockInviteLinkRepo) Revoke(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockInviteLinkRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.InviteLink, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]domain.InviteLink), args.Error(1)
}
func (m *MockInviteLinkRepo) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) Create(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) GetPending(ctx context.Context, scope domain.Scope, userID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, scope, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) MarkReviewed(ctx context.Context, id int32, status domain.JoinRequestStatus, reviewerID int32, at time.Time) error {
	args := m.Called(ctx, id, status, reviewerID, at)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListPendingByScope(ctx context.Context, scope domain.Scope) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// fakeEmailService records sends and never fails unless told to.
type fakeEmailService struct {
	invitations int
	decisions   int
	fail        bool
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, email, scopeName, token, message string) error {
	f.invitations++
	if f.fail {
		return context.DeadlineExceeded
	}
	return nil
}

func (f *fakeEmailService) SendRequestDecision(ctx context.Context, email, scopeName string, approved bool) error {
	f.decisions++
	if f.fail {
		return context.DeadlineExceeded
	}
	return nil
}

// stubTx runs each transaction body against the same repositories with no
// real transaction underneath.
type stubTx struct {
	repos repository.Repos
}

func (t *stubTx) WithTx(ctx context.Context, fn func(r repository.Repos) error) error {
	return fn(t.repos)
}

// testRepos is the mock set wired into one repository.Repos bundle.
type testRepos struct {
	users         *MockUserRepo
	orgs          *MockOrgRepo
	memberships   *MockMembershipRepo
	events        *MockEventRepo
	participants  *MockParticipantRepo
	staff         *MockStaffRepo
	teams         *MockTeamRepo
	emailInvites  *MockEmailInviteRepo
	inviteLinks   *MockInviteLinkRepo
	joinRequests  *MockJoinRequestRepo
	notifications *MockNotificationRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		users:         new(MockUserRepo),
		orgs:          new(MockOrgRepo),
		memberships:   new(MockMembershipRepo),
		events:        new(MockEventRepo),
		participants:  new(MockParticipantRepo),
		staff:         new(MockStaffRepo),
		teams:         new(MockTeamRepo),
		emailInvites:  new(MockEmailInviteRepo),
		inviteLinks:   new(MockInviteLinkRepo),
		joinRequests:  new(MockJoinRequestRepo),
		notifications: new(MockNotificationRepo),
	}
}

func (tr *testRepos) bundle() repository.Repos {
	return repository.Repos{
		Users:         tr.users,
		Orgs:          tr.orgs,
		Memberships:   tr.memberships,
		Events:        tr.events,
		Participants:  tr.participants,
		Staff:         tr.staff,
		Teams:         tr.teams,
		EmailInvites:  tr.emailInvites,
		InviteLinks:   tr.inviteLinks,
		JoinRequests:  tr.joinRequests,
		Notifications: tr.notifications,
	}
}

func (tr *testRepos) tx() repository.Tx {
	return &stubTx{repos: tr.bundle()}
}
