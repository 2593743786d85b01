package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/service"
)

func pendingLink(scope domain.Scope, maxUses *int32, uses int32) *domain.InviteLink {
	return &domain.InviteLink{
		ID:        5,
		Scope:     scope,
		Token:     "link-tok",
		Status:    domain.LinkStatusPending,
		MaxUses:   maxUses,
		Uses:      uses,
		CreatedBy: 10,
	}
}

func TestAcceptInviteLink_HappyPath(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	max := int32(5)
	link := pendingLink(domain.OrgScope(1), &max, 0)
	consumed := *link
	consumed.Uses = 1

	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(link, nil)
	tr.memberships.On("Get", ctx, int32(1), int32(20)).Return(nil, repository.ErrNotFound)
	tr.memberships.On("Add", ctx, mock.Anything).Return(nil)
	tr.inviteLinks.On("Consume", ctx, "link-tok", mock.AnythingOfType("time.Time")).Return(&consumed, nil)

	got, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got.Uses)
	tr.memberships.AssertExpectations(t)
}

func TestAcceptInviteLink_Revoked(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	link := pendingLink(domain.OrgScope(1), nil, 0)
	link.Status = domain.LinkStatusRevoked
	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(link, nil)

	_, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	assert.True(t, domain.IsCode(err, domain.CodeLinkInvalid))
	tr.memberships.AssertNotCalled(t, "Add", ctx, mock.Anything)
}

func TestAcceptInviteLink_Expired(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	link := pendingLink(domain.OrgScope(1), nil, 0)
	past := time.Now().Add(-time.Minute)
	link.ExpiresAt = &past
	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(link, nil)

	_, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	assert.True(t, domain.IsCode(err, domain.CodeLinkExpired))
}

func TestAcceptInviteLink_UsageCapReached(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	max := int32(2)
	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(pendingLink(domain.OrgScope(1), &max, 2), nil)

	_, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	assert.True(t, domain.IsCode(err, domain.CodeLinkMaxUsesReached))
}

func TestAcceptInviteLink_LosesLastUseRace(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	max := int32(1)
	fresh := pendingLink(domain.OrgScope(1), &max, 0)
	spent := pendingLink(domain.OrgScope(1), &max, 1)

	// First read sees a valid link; the conditional increment then matches
	// no row; the classify re-read sees the cap reached.
	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(fresh, nil).Once()
	tr.memberships.On("Get", ctx, int32(1), int32(20)).Return(nil, repository.ErrNotFound)
	tr.memberships.On("Add", ctx, mock.Anything).Return(nil)
	tr.inviteLinks.On("Consume", ctx, "link-tok", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrNotFound)
	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(spent, nil).Once()

	_, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	assert.True(t, domain.IsCode(err, domain.CodeLinkMaxUsesReached))
}

func TestAcceptInviteLink_MemberSkipsUseWhenConfigured(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: false})
	ctx := context.Background()

	link := pendingLink(domain.OrgScope(1), nil, 3)
	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(link, nil)
	tr.memberships.On("Get", ctx, int32(1), int32(20)).
		Return(&domain.OrgMembership{OrgID: 1, UserID: 20, Role: domain.OrgRoleMember}, nil)
	tr.memberships.On("Add", ctx, mock.Anything).Return(repository.ErrDuplicate)

	got, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	require.NoError(t, err)
	assert.Equal(t, int32(3), got.Uses)
	tr.inviteLinks.AssertNotCalled(t, "Consume", ctx, "link-tok", mock.Anything)
}

func TestAcceptInviteLink_MemberStillChargedByDefault(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	link := pendingLink(domain.OrgScope(1), nil, 3)
	consumed := *link
	consumed.Uses = 4

	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(link, nil)
	tr.memberships.On("Get", ctx, int32(1), int32(20)).
		Return(&domain.OrgMembership{OrgID: 1, UserID: 20, Role: domain.OrgRoleMember}, nil)
	tr.memberships.On("Add", ctx, mock.Anything).Return(repository.ErrDuplicate)
	tr.inviteLinks.On("Consume", ctx, "link-tok", mock.AnythingOfType("time.Time")).Return(&consumed, nil)

	got, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	require.NoError(t, err)
	assert.Equal(t, int32(4), got.Uses)
}

func TestAcceptInviteLink_TeamGrantRegistersEventToo(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	link := pendingLink(domain.TeamScope(8), nil, 0)
	consumed := *link
	consumed.Uses = 1

	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(link, nil)
	tr.teams.On("GetMember", ctx, int32(8), int32(20)).Return(nil, repository.ErrNotFound)
	tr.teams.On("GetByID", ctx, int32(8)).Return(&domain.Team{ID: 8, EventID: 4, Name: "Blue"}, nil)
	tr.participants.On("Add", ctx, mock.MatchedBy(func(p *domain.EventParticipant) bool {
		return p.EventID == 4 && p.UserID == 20 && p.Status == domain.ParticipantRegistered
	})).Return(nil)
	tr.teams.On("AddMember", ctx, mock.MatchedBy(func(m *domain.TeamMembership) bool {
		return m.TeamID == 8 && m.UserID == 20
	})).Return(nil)
	tr.inviteLinks.On("Consume", ctx, "link-tok", mock.AnythingOfType("time.Time")).Return(&consumed, nil)

	_, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	require.NoError(t, err)
	tr.participants.AssertExpectations(t)
	tr.teams.AssertExpectations(t)
}

func TestCreateInviteLink_ValidatesMaxUses(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{})
	ctx := context.Background()

	tr.orgs.On("GetByID", ctx, int32(1)).Return(&domain.Organization{ID: 1, Name: "Acme"}, nil)
	tr.memberships.On("Get", ctx, int32(1), int32(10)).Return(adminMembership(1, 10), nil)

	zero := int32(0)
	_, err := svc.CreateInviteLink(ctx, 10, domain.OrgScope(1), "", &zero, 0)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidArgument))
}

func TestAcceptInviteLink_SweptLinkReadsExpired(t *testing.T) {
	tr := newTestRepos()
	svc := newInviteService(tr, &fakeEmailService{}, service.InviteConfig{CountRedundantLinkUses: true})
	ctx := context.Background()

	// The cron sweep revokes expired links; expiry must still win over the
	// revoked status so the code does not depend on sweep timing.
	link := pendingLink(domain.OrgScope(1), nil, 0)
	link.Status = domain.LinkStatusRevoked
	past := time.Now().Add(-time.Minute)
	link.ExpiresAt = &past
	tr.inviteLinks.On("GetByToken", ctx, "link-tok").Return(link, nil)

	_, err := svc.AcceptInviteLink(ctx, "link-tok", 20)
	assert.True(t, domain.IsCode(err, domain.CodeLinkExpired))
}
