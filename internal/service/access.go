package service

import (
	"context"
	"errors"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type accessService struct {
	memberRepo repository.MembershipRepository
	staffRepo  repository.StaffRepository
}

func NewAccessService(memberRepo repository.MembershipRepository, staffRepo repository.StaffRepository) AccessService {
	return &accessService{
		memberRepo: memberRepo,
		staffRepo:  staffRepo,
	}
}

func (s *accessService) ResolveOrgRole(ctx context.Context, orgID, userID int32) (domain.OrgRole, error) {
	m, err := s.memberRepo.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.OrgRoleNone, nil
		}
		return domain.OrgRoleNone, err
	}
	return m.Role, nil
}

func (s *accessService) ResolveEventPermission(ctx context.Context, orgID, eventID, userID int32) (domain.EventPermission, error) {
	// Org OWNER passes event-admin checks without a staff row. Org ADMIN
	// does not: event admin rights are granted per event.
	role, err := s.ResolveOrgRole(ctx, orgID, userID)
	if err != nil {
		return domain.EventPermissionNone, err
	}
	if role == domain.OrgRoleOwner {
		return domain.EventPermissionAdmin, nil
	}

	staff, err := s.staffRepo.Get(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.EventPermissionNone, nil
		}
		return domain.EventPermissionNone, err
	}
	if staff.Role == domain.StaffRoleAdmin {
		return domain.EventPermissionAdmin, nil
	}
	return domain.EventPermissionStaff, nil
}

func (s *accessService) RequireOrgAdmin(ctx context.Context, orgID, userID int32) error {
	role, err := s.ResolveOrgRole(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if role != domain.OrgRoleAdmin && role != domain.OrgRoleOwner {
		return domain.E(domain.CodeNotAuthorized, "organization admin access required")
	}
	return nil
}

func (s *accessService) RequireEventAdmin(ctx context.Context, orgID, eventID, userID int32) error {
	perm, err := s.ResolveEventPermission(ctx, orgID, eventID, userID)
	if err != nil {
		return err
	}
	if perm != domain.EventPermissionAdmin {
		return domain.E(domain.CodeNotAuthorized, "event admin access required")
	}
	return nil
}
