package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/service"
)

func newTeamService(tr *testRepos) service.TeamService {
	limiter := ratelimit.NewMemoryLimiter(1000, time.Minute)
	return service.NewTeamService(tr.bundle(), tr.tx(), limiter)
}

func TestCreateTeam_CreatorJoinsOwnTeam(t *testing.T) {
	tr := newTestRepos()
	svc := newTeamService(tr)
	ctx := context.Background()

	tr.events.On("GetByID", ctx, int32(4)).Return(openEvent(0), nil)
	tr.participants.On("Get", ctx, int32(4), int32(20)).
		Return(&domain.EventParticipant{EventID: 4, UserID: 20, Status: domain.ParticipantRegistered}, nil)
	tr.teams.On("Create", ctx, mock.MatchedBy(func(team *domain.Team) bool {
		return team.EventID == 4 && team.Name == "The Gophers" && team.CreatedBy == 20
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Team).ID = 9
	}).Return(nil)
	tr.teams.On("AddMember", ctx, mock.MatchedBy(func(m *domain.TeamMembership) bool {
		return m.TeamID == 9 && m.UserID == 20
	})).Return(nil)

	team, err := svc.CreateTeam(ctx, 20, 4, "  The Gophers  ")
	require.NoError(t, err)
	assert.Equal(t, int32(9), team.ID)
	tr.teams.AssertExpectations(t)
}

func TestCreateTeam_RequiresParticipation(t *testing.T) {
	tr := newTestRepos()
	svc := newTeamService(tr)
	ctx := context.Background()

	tr.events.On("GetByID", ctx, int32(4)).Return(openEvent(0), nil)
	tr.participants.On("Get", ctx, int32(4), int32(30)).Return(nil, repository.ErrNotFound)

	_, err := svc.CreateTeam(ctx, 30, 4, "Outsiders")
	assert.True(t, domain.IsCode(err, domain.CodeNotAuthorized))
	tr.teams.AssertNotCalled(t, "Create", ctx, mock.Anything)
}

func TestCreateTeam_CancelledParticipantRejected(t *testing.T) {
	tr := newTestRepos()
	svc := newTeamService(tr)
	ctx := context.Background()

	tr.events.On("GetByID", ctx, int32(4)).Return(openEvent(0), nil)
	tr.participants.On("Get", ctx, int32(4), int32(20)).
		Return(&domain.EventParticipant{EventID: 4, UserID: 20, Status: domain.ParticipantCancelled}, nil)

	_, err := svc.CreateTeam(ctx, 20, 4, "Ghosts")
	assert.True(t, domain.IsCode(err, domain.CodeNotAuthorized))
}

func TestCreateTeam_DuplicateNameInEvent(t *testing.T) {
	tr := newTestRepos()
	svc := newTeamService(tr)
	ctx := context.Background()

	tr.events.On("GetByID", ctx, int32(4)).Return(openEvent(0), nil)
	tr.participants.On("Get", ctx, int32(4), int32(20)).
		Return(&domain.EventParticipant{EventID: 4, UserID: 20, Status: domain.ParticipantRegistered}, nil)
	tr.teams.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.CreateTeam(ctx, 20, 4, "The Gophers")
	assert.True(t, domain.IsCode(err, domain.CodeInvalidArgument))
}

func TestGetTeam_NotFound(t *testing.T) {
	tr := newTestRepos()
	svc := newTeamService(tr)
	ctx := context.Background()

	tr.teams.On("GetByID", ctx, int32(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetTeam(ctx, 99)
	assert.True(t, domain.IsCode(err, domain.CodeTeamNotFound))
}
