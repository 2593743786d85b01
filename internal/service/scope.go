package service

import (
	"context"
	"errors"
	"strconv"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
)

// checkRate consults the rate limiter before any other logic runs. A
// limiter outage fails open with a warning; a deny short-circuits the
// operation with RATE_LIMITED.
func checkRate(ctx context.Context, limiter ratelimit.Limiter, operation string, userID int32) error {
	allowed, err := limiter.Allow(ctx, operation, strconv.Itoa(int(userID)))
	if err != nil {
		logger.Warn("rate limiter unavailable", "operation", operation, "error", err)
		return nil
	}
	if !allowed {
		return domain.E(domain.CodeRateLimited, "too many requests, try again later")
	}
	return nil
}

// scopeGate centralizes how invite and join-request flows treat the three
// scope kinds: existence, display name, issuer permission, membership
// checks, and membership grants.
type scopeGate struct {
	repos  repository.Repos
	access AccessService
}

func newScopeGate(repos repository.Repos, access AccessService) *scopeGate {
	return &scopeGate{repos: repos, access: access}
}

// resolve loads the scope and returns its display name. A missing scope is
// reported as the scope-specific not-found code, distinct from
// NOT_AUTHORIZED.
func (g *scopeGate) resolve(ctx context.Context, scope domain.Scope) (string, error) {
	switch scope.Type {
	case domain.ScopeOrg:
		org, err := g.repos.Orgs.GetByID(ctx, scope.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", domain.E(domain.CodeOrgNotFound, "organization not found")
			}
			return "", err
		}
		return org.Name, nil
	case domain.ScopeEvent:
		event, err := g.repos.Events.GetByID(ctx, scope.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", domain.E(domain.CodeEventNotFound, "event not found")
			}
			return "", err
		}
		return event.Name, nil
	case domain.ScopeTeam:
		team, err := g.repos.Teams.GetByID(ctx, scope.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", domain.E(domain.CodeTeamNotFound, "team not found")
			}
			return "", err
		}
		return team.Name, nil
	}
	return "", domain.E(domain.CodeInvalidArgument, "unknown scope type")
}

// requireIssuer checks the invite-issuance permission for the scope: org
// ADMIN/OWNER for org scopes, EVENT_ADMIN for event scopes, and for team
// scopes either EVENT_ADMIN of the owning event or an existing team member.
func (g *scopeGate) requireIssuer(ctx context.Context, scope domain.Scope, userID int32) error {
	switch scope.Type {
	case domain.ScopeOrg:
		return g.access.RequireOrgAdmin(ctx, scope.ID, userID)
	case domain.ScopeEvent:
		event, err := g.repos.Events.GetByID(ctx, scope.ID)
		if err != nil {
			return translateScopeErr(err, scope.Type)
		}
		return g.access.RequireEventAdmin(ctx, event.OrgID, event.ID, userID)
	case domain.ScopeTeam:
		team, err := g.repos.Teams.GetByID(ctx, scope.ID)
		if err != nil {
			return translateScopeErr(err, scope.Type)
		}
		if _, err := g.repos.Teams.GetMember(ctx, team.ID, userID); err == nil {
			return nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		event, err := g.repos.Events.GetByID(ctx, team.EventID)
		if err != nil {
			return translateScopeErr(err, domain.ScopeEvent)
		}
		return g.access.RequireEventAdmin(ctx, event.OrgID, event.ID, userID)
	}
	return domain.E(domain.CodeInvalidArgument, "unknown scope type")
}

// isMember reports whether the user already holds the membership an invite
// or request for this scope would grant.
func (g *scopeGate) isMember(ctx context.Context, scope domain.Scope, userID int32) (bool, error) {
	var err error
	switch scope.Type {
	case domain.ScopeOrg:
		_, err = g.repos.Memberships.Get(ctx, scope.ID, userID)
	case domain.ScopeEvent:
		var p *domain.EventParticipant
		p, err = g.repos.Participants.Get(ctx, scope.ID, userID)
		if err == nil && p.Status == domain.ParticipantCancelled {
			return false, nil
		}
	case domain.ScopeTeam:
		_, err = g.repos.Teams.GetMember(ctx, scope.ID, userID)
	default:
		return false, domain.E(domain.CodeInvalidArgument, "unknown scope type")
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// grant creates the membership row for the scope inside the caller's
// transaction. An existing row is success, not failure: acceptance is
// idempotent under concurrent double-submit.
func grant(ctx context.Context, r repository.Repos, scope domain.Scope, userID int32) error {
	switch scope.Type {
	case domain.ScopeOrg:
		err := r.Memberships.Add(ctx, &domain.OrgMembership{
			OrgID:  scope.ID,
			UserID: userID,
			Role:   domain.OrgRoleMember,
		})
		return ignoreDuplicate(err)
	case domain.ScopeEvent:
		err := r.Participants.Add(ctx, &domain.EventParticipant{
			EventID: scope.ID,
			UserID:  userID,
			Status:  domain.ParticipantRegistered,
		})
		if errors.Is(err, repository.ErrDuplicate) {
			// A CANCELLED row blocked the insert but is not a membership;
			// reactivate it so acceptance leaves a registered participant.
			p, err := r.Participants.Get(ctx, scope.ID, userID)
			if err != nil {
				return err
			}
			if p.Status == domain.ParticipantCancelled {
				return r.Participants.UpdateStatus(ctx, scope.ID, userID, domain.ParticipantRegistered)
			}
			return nil
		}
		return err
	case domain.ScopeTeam:
		// Joining a team also registers the user for the owning event.
		team, err := r.Teams.GetByID(ctx, scope.ID)
		if err != nil {
			return translateScopeErr(err, domain.ScopeTeam)
		}
		if err := grant(ctx, r, domain.EventScope(team.EventID), userID); err != nil {
			return err
		}
		err = r.Teams.AddMember(ctx, &domain.TeamMembership{
			TeamID: scope.ID,
			UserID: userID,
		})
		return ignoreDuplicate(err)
	}
	return domain.E(domain.CodeInvalidArgument, "unknown scope type")
}

func ignoreDuplicate(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
}

func translateScopeErr(err error, scopeType domain.ScopeType) error {
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	switch scopeType {
	case domain.ScopeOrg:
		return domain.E(domain.CodeOrgNotFound, "organization not found")
	case domain.ScopeEvent:
		return domain.E(domain.CodeEventNotFound, "event not found")
	case domain.ScopeTeam:
		return domain.E(domain.CodeTeamNotFound, "team not found")
	}
	return err
}
