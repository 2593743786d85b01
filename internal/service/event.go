package service

import (
	"context"
	"errors"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
)

type eventService struct {
	repos   repository.Repos
	tx      repository.Tx
	access  AccessService
	limiter ratelimit.Limiter
}

func NewEventService(repos repository.Repos, tx repository.Tx, access AccessService, limiter ratelimit.Limiter) EventService {
	return &eventService{
		repos:   repos,
		tx:      tx,
		access:  access,
		limiter: limiter,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, callerID int32, event *domain.Event) error {
	if err := checkRate(ctx, s.limiter, "create_event", callerID); err != nil {
		return err
	}
	if _, err := s.repos.Orgs.GetByID(ctx, event.OrgID); err != nil {
		return translateScopeErr(err, domain.ScopeOrg)
	}
	if err := s.access.RequireOrgAdmin(ctx, event.OrgID, callerID); err != nil {
		return err
	}
	if !slugPattern.MatchString(event.Slug) {
		return domain.E(domain.CodeInvalidArgument, "slug must be lowercase letters, digits, and hyphens")
	}
	if event.Capacity < 0 {
		return domain.E(domain.CodeInvalidArgument, "capacity must be zero or positive")
	}
	switch event.JoinMode {
	case "":
		event.JoinMode = domain.JoinModeInviteOnly
	case domain.JoinModeOpen, domain.JoinModeRequest, domain.JoinModeInviteOnly:
	default:
		return domain.E(domain.CodeInvalidArgument, "unknown join mode")
	}

	if err := s.repos.Events.Create(ctx, event); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.E(domain.CodeInvalidArgument, "slug is already taken within this organization")
		}
		return err
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int32) (*domain.Event, error) {
	event, err := s.repos.Events.GetByID(ctx, id)
	if err != nil {
		return nil, translateScopeErr(err, domain.ScopeEvent)
	}
	return event, nil
}

func (s *eventService) ListOrgEvents(ctx context.Context, orgID int32) ([]domain.Event, error) {
	if _, err := s.repos.Orgs.GetByID(ctx, orgID); err != nil {
		return nil, translateScopeErr(err, domain.ScopeOrg)
	}
	return s.repos.Events.ListByOrg(ctx, orgID)
}

func (s *eventService) UpdateEvent(ctx context.Context, callerID int32, event *domain.Event) error {
	if err := checkRate(ctx, s.limiter, "update_event", callerID); err != nil {
		return err
	}
	current, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		return err
	}
	if err := s.access.RequireEventAdmin(ctx, current.OrgID, current.ID, callerID); err != nil {
		return err
	}
	switch event.JoinMode {
	case domain.JoinModeOpen, domain.JoinModeRequest, domain.JoinModeInviteOnly:
	default:
		return domain.E(domain.CodeInvalidArgument, "unknown join mode")
	}
	if event.Capacity < 0 {
		return domain.E(domain.CodeInvalidArgument, "capacity must be zero or positive")
	}
	event.OrgID = current.OrgID
	event.Slug = current.Slug
	return s.repos.Events.Update(ctx, event)
}

// Register self-registers the caller. Only OPEN events allow this path;
// REQUEST events go through join requests and INVITE_ONLY through invites.
// When the event is at capacity the caller lands on the waitlist instead of
// being turned away. The count and the insert run in one transaction so two
// racing registrations cannot both claim the last seat.
func (s *eventService) Register(ctx context.Context, eventID, userID int32) (*domain.EventParticipant, error) {
	if err := checkRate(ctx, s.limiter, "register_event", userID); err != nil {
		return nil, err
	}
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.JoinMode != domain.JoinModeOpen {
		return nil, domain.E(domain.CodeRegistrationClosed, "this event does not allow open registration")
	}

	var participant *domain.EventParticipant
	err = s.tx.WithTx(ctx, func(r repository.Repos) error {
		if existing, err := r.Participants.Get(ctx, eventID, userID); err == nil {
			if existing.Status != domain.ParticipantCancelled {
				return domain.E(domain.CodeAlreadyRegistered, "already registered for this event")
			}
			status, err := s.admissionStatus(ctx, r, event)
			if err != nil {
				return err
			}
			if err := r.Participants.UpdateStatus(ctx, eventID, userID, status); err != nil {
				return err
			}
			existing.Status = status
			participant = existing
			return nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		status, err := s.admissionStatus(ctx, r, event)
		if err != nil {
			return err
		}
		p := &domain.EventParticipant{
			EventID: eventID,
			UserID:  userID,
			Status:  status,
		}
		if err := r.Participants.Add(ctx, p); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.E(domain.CodeAlreadyRegistered, "already registered for this event")
			}
			return err
		}
		participant = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participant, nil
}

// admissionStatus picks REGISTERED or WAITLISTED from the event's capacity
// and the current active headcount.
func (s *eventService) admissionStatus(ctx context.Context, r repository.Repos, event *domain.Event) (domain.ParticipantStatus, error) {
	if event.Capacity == 0 {
		return domain.ParticipantRegistered, nil
	}
	active, err := r.Participants.CountActive(ctx, event.ID)
	if err != nil {
		return "", err
	}
	if active >= event.Capacity {
		return domain.ParticipantWaitlisted, nil
	}
	return domain.ParticipantRegistered, nil
}

func (s *eventService) CancelRegistration(ctx context.Context, eventID, userID int32) error {
	if err := checkRate(ctx, s.limiter, "cancel_registration", userID); err != nil {
		return err
	}
	p, err := s.repos.Participants.Get(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeUserNotFound, "not registered for this event")
		}
		return err
	}
	if p.Status == domain.ParticipantCancelled {
		return nil
	}
	return s.repos.Participants.UpdateStatus(ctx, eventID, userID, domain.ParticipantCancelled)
}

func (s *eventService) AddStaff(ctx context.Context, callerID, eventID, userID int32, role domain.StaffRole) error {
	if err := checkRate(ctx, s.limiter, "add_staff", callerID); err != nil {
		return err
	}
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.access.RequireEventAdmin(ctx, event.OrgID, event.ID, callerID); err != nil {
		return err
	}
	switch role {
	case domain.StaffRoleAdmin, domain.StaffRoleJudge, domain.StaffRoleStaff:
	default:
		return domain.E(domain.CodeInvalidArgument, "unknown staff role")
	}
	err = s.repos.Staff.Add(ctx, &domain.EventStaffMembership{
		EventID: eventID,
		UserID:  userID,
		Role:    role,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return domain.E(domain.CodeAlreadyRegistered, "user is already staff for this event")
	}
	return err
}

func (s *eventService) RemoveStaff(ctx context.Context, callerID, eventID, userID int32) error {
	if err := checkRate(ctx, s.limiter, "remove_staff", callerID); err != nil {
		return err
	}
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.access.RequireEventAdmin(ctx, event.OrgID, event.ID, callerID); err != nil {
		return err
	}
	if _, err := s.repos.Staff.Get(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeUserNotFound, "user is not staff for this event")
		}
		return err
	}
	return s.repos.Staff.Remove(ctx, eventID, userID)
}

func (s *eventService) ListStaff(ctx context.Context, callerID, eventID int32) ([]domain.EventStaffMembership, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireEventAdmin(ctx, event.OrgID, event.ID, callerID); err != nil {
		return nil, err
	}
	return s.repos.Staff.ListByEvent(ctx, eventID)
}
