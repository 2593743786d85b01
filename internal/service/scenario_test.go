package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/service"
)

// Full invite round trip: an org admin issues an email invite, the recipient
// accepts it with the emailed token, membership lands, and the issuer is
// notified.
func TestInviteFlow_IssueThenAccept(t *testing.T) {
	tr := newTestRepos()
	email := &fakeEmailService{}
	svc := newInviteService(tr, email, service.InviteConfig{})
	ctx := context.Background()

	tr.orgs.On("GetByID", ctx, int32(1)).Return(&domain.Organization{ID: 1, Name: "Acme"}, nil)
	tr.memberships.On("Get", ctx, int32(1), int32(10)).Return(adminMembership(1, 10), nil)
	tr.users.On("GetByEmail", ctx, "bob@example.com").Return(nil, repository.ErrNotFound)
	tr.emailInvites.On("GetPending", ctx, domain.OrgScope(1), "bob@example.com").Return(nil, repository.ErrNotFound)

	var issued *domain.EmailInvite
	tr.emailInvites.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		issued = args.Get(1).(*domain.EmailInvite)
		issued.ID = 3
	}).Return(nil)

	invite, err := svc.CreateEmailInvite(ctx, 10, domain.OrgScope(1), "Bob@Example.com", "join us", 0)
	require.NoError(t, err)
	require.NotEmpty(t, invite.Token)
	assert.Equal(t, 1, email.invitations)

	tr.emailInvites.On("GetByToken", ctx, invite.Token).Return(issued, nil)
	tr.memberships.On("Add", ctx, mock.MatchedBy(func(m *domain.OrgMembership) bool {
		return m.OrgID == 1 && m.UserID == 40 && m.Role == domain.OrgRoleMember
	})).Return(nil)
	tr.emailInvites.On("MarkAccepted", ctx, int32(3), int32(40), mock.AnythingOfType("time.Time")).Return(nil)
	tr.notifications.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 10
	})).Return(nil)

	accepted, err := svc.AcceptEmailInvite(ctx, invite.Token, 40, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.InviteStatusAccepted, accepted.Status)
	tr.memberships.AssertExpectations(t)
	tr.notifications.AssertExpectations(t)
}
