package service

import (
	"context"
	"errors"
	"strings"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
)

type teamService struct {
	repos   repository.Repos
	tx      repository.Tx
	limiter ratelimit.Limiter
}

func NewTeamService(repos repository.Repos, tx repository.Tx, limiter ratelimit.Limiter) TeamService {
	return &teamService{repos: repos, tx: tx, limiter: limiter}
}

// CreateTeam forms a team within an event. Only active participants can
// create one, and the creator joins their own team in the same transaction.
func (s *teamService) CreateTeam(ctx context.Context, creatorID, eventID int32, name string) (*domain.Team, error) {
	if err := checkRate(ctx, s.limiter, "create_team", creatorID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.E(domain.CodeInvalidArgument, "team name is required")
	}
	if _, err := s.repos.Events.GetByID(ctx, eventID); err != nil {
		return nil, translateScopeErr(err, domain.ScopeEvent)
	}
	p, err := s.repos.Participants.Get(ctx, eventID, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeNotAuthorized, "event participation required to create a team")
		}
		return nil, err
	}
	if p.Status == domain.ParticipantCancelled {
		return nil, domain.E(domain.CodeNotAuthorized, "event participation required to create a team")
	}

	team := &domain.Team{
		EventID:   eventID,
		Name:      name,
		CreatedBy: creatorID,
	}
	err = s.tx.WithTx(ctx, func(r repository.Repos) error {
		if err := r.Teams.Create(ctx, team); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.E(domain.CodeInvalidArgument, "team name is already taken within this event")
			}
			return err
		}
		return r.Teams.AddMember(ctx, &domain.TeamMembership{
			TeamID: team.ID,
			UserID: creatorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int32) (*domain.Team, error) {
	team, err := s.repos.Teams.GetByID(ctx, id)
	if err != nil {
		return nil, translateScopeErr(err, domain.ScopeTeam)
	}
	return team, nil
}

func (s *teamService) ListEventTeams(ctx context.Context, eventID int32) ([]domain.Team, error) {
	if _, err := s.repos.Events.GetByID(ctx, eventID); err != nil {
		return nil, translateScopeErr(err, domain.ScopeEvent)
	}
	return s.repos.Teams.ListByEvent(ctx, eventID)
}

func (s *teamService) ListTeamMembers(ctx context.Context, teamID int32) ([]domain.TeamMembership, error) {
	if _, err := s.repos.Teams.GetByID(ctx, teamID); err != nil {
		return nil, translateScopeErr(err, domain.ScopeTeam)
	}
	return s.repos.Teams.ListMembers(ctx, teamID)
}
