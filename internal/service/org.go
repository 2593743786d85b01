package service

import (
	"context"
	"errors"
	"regexp"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type organizationService struct {
	repos   repository.Repos
	tx      repository.Tx
	access  AccessService
	limiter ratelimit.Limiter
}

func NewOrganizationService(repos repository.Repos, tx repository.Tx, access AccessService, limiter ratelimit.Limiter) OrganizationService {
	return &organizationService{
		repos:   repos,
		tx:      tx,
		access:  access,
		limiter: limiter,
	}
}

func (s *organizationService) CreateOrganization(ctx context.Context, creatorID int32, org *domain.Organization) error {
	if err := checkRate(ctx, s.limiter, "create_org", creatorID); err != nil {
		return err
	}
	if !slugPattern.MatchString(org.Slug) {
		return domain.E(domain.CodeInvalidArgument, "slug must be lowercase letters, digits, and hyphens")
	}
	if err := validateJoinSettings(org.JoinMode, org.AllowJoinRequests); err != nil {
		return err
	}
	if org.JoinMode == "" {
		org.JoinMode = domain.JoinModeInviteOnly
	}

	// Org row and the creator's OWNER membership commit together.
	return s.tx.WithTx(ctx, func(r repository.Repos) error {
		if err := r.Orgs.Create(ctx, org); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.E(domain.CodeInvalidArgument, "slug is already taken")
			}
			return err
		}
		return r.Memberships.Add(ctx, &domain.OrgMembership{
			OrgID:  org.ID,
			UserID: creatorID,
			Role:   domain.OrgRoleOwner,
		})
	})
}

func (s *organizationService) GetOrganization(ctx context.Context, id int32) (*domain.Organization, error) {
	org, err := s.repos.Orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeOrgNotFound, "organization not found")
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationService) GetOrganizationBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	org, err := s.repos.Orgs.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeOrgNotFound, "organization not found")
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationService) UpdateOrganization(ctx context.Context, callerID int32, org *domain.Organization) error {
	if err := checkRate(ctx, s.limiter, "update_org", callerID); err != nil {
		return err
	}
	if _, err := s.GetOrganization(ctx, org.ID); err != nil {
		return err
	}
	if err := s.access.RequireOrgAdmin(ctx, org.ID, callerID); err != nil {
		return err
	}
	if err := validateJoinSettings(org.JoinMode, org.AllowJoinRequests); err != nil {
		return err
	}
	return s.repos.Orgs.Update(ctx, org)
}

// validateJoinSettings enforces the settings invariant: join requests may
// only be enabled while the join mode is REQUEST. Violations are rejected,
// not silently corrected.
func validateJoinSettings(mode domain.JoinMode, allowJoinRequests bool) error {
	if allowJoinRequests && mode != domain.JoinModeRequest {
		return domain.E(domain.CodeInvalidJoinSettings, "join requests require join mode REQUEST")
	}
	switch mode {
	case "", domain.JoinModeOpen, domain.JoinModeRequest, domain.JoinModeInviteOnly:
		return nil
	}
	return domain.E(domain.CodeInvalidArgument, "unknown join mode")
}

func (s *organizationService) ListMembers(ctx context.Context, callerID, orgID int32) ([]domain.OrgMembership, error) {
	if _, err := s.GetOrganization(ctx, orgID); err != nil {
		return nil, err
	}
	role, err := s.access.ResolveOrgRole(ctx, orgID, callerID)
	if err != nil {
		return nil, err
	}
	if role == domain.OrgRoleNone {
		return nil, domain.E(domain.CodeNotAuthorized, "membership required")
	}
	return s.repos.Memberships.ListByOrg(ctx, orgID)
}

func (s *organizationService) ChangeMemberRole(ctx context.Context, callerID, orgID, userID int32, role domain.OrgRole) error {
	if err := checkRate(ctx, s.limiter, "change_member_role", callerID); err != nil {
		return err
	}
	if _, err := s.GetOrganization(ctx, orgID); err != nil {
		return err
	}
	callerRole, err := s.access.ResolveOrgRole(ctx, orgID, callerID)
	if err != nil {
		return err
	}
	if callerRole != domain.OrgRoleOwner {
		return domain.E(domain.CodeNotAuthorized, "only the owner can change roles")
	}
	switch role {
	case domain.OrgRoleOwner, domain.OrgRoleAdmin, domain.OrgRoleMember:
	default:
		return domain.E(domain.CodeInvalidArgument, "unknown role")
	}

	current, err := s.repos.Memberships.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeUserNotFound, "user is not a member of this organization")
		}
		return err
	}
	if current.Role == domain.OrgRoleOwner && role != domain.OrgRoleOwner {
		if err := s.requireAnotherOwner(ctx, orgID); err != nil {
			return err
		}
	}
	return s.repos.Memberships.UpdateRole(ctx, orgID, userID, role)
}

func (s *organizationService) RemoveMember(ctx context.Context, callerID, orgID, userID int32) error {
	if err := checkRate(ctx, s.limiter, "remove_member", callerID); err != nil {
		return err
	}
	if _, err := s.GetOrganization(ctx, orgID); err != nil {
		return err
	}
	// Members may leave on their own; removing anyone else needs admin.
	if callerID != userID {
		if err := s.access.RequireOrgAdmin(ctx, orgID, callerID); err != nil {
			return err
		}
	}

	current, err := s.repos.Memberships.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeUserNotFound, "user is not a member of this organization")
		}
		return err
	}
	if current.Role == domain.OrgRoleOwner {
		if err := s.requireAnotherOwner(ctx, orgID); err != nil {
			return err
		}
	}
	return s.repos.Memberships.Remove(ctx, orgID, userID)
}

// requireAnotherOwner refuses to demote or remove the last remaining owner.
func (s *organizationService) requireAnotherOwner(ctx context.Context, orgID int32) error {
	owners, err := s.repos.Memberships.CountByRole(ctx, orgID, domain.OrgRoleOwner)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return domain.E(domain.CodeLastOwner, "an organization must keep at least one owner")
	}
	return nil
}

func (s *organizationService) ListMyOrganizations(ctx context.Context, userID int32) ([]domain.Organization, []domain.OrgMembership, error) {
	memberships, err := s.repos.Memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var orgs []domain.Organization
	for _, m := range memberships {
		org, err := s.repos.Orgs.GetByID(ctx, m.OrgID)
		if err != nil {
			continue
		}
		orgs = append(orgs, *org)
	}
	return orgs, memberships, nil
}
