package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
)

type joinRequestService struct {
	repos    repository.Repos
	tx       repository.Tx
	gate     *scopeGate
	emailSvc EmailService
	limiter  ratelimit.Limiter
}

func NewJoinRequestService(
	repos repository.Repos,
	tx repository.Tx,
	access AccessService,
	emailSvc EmailService,
	limiter ratelimit.Limiter,
) JoinRequestService {
	return &joinRequestService{
		repos:    repos,
		tx:       tx,
		gate:     newScopeGate(repos, access),
		emailSvc: emailSvc,
		limiter:  limiter,
	}
}

func (s *joinRequestService) CreateJoinRequest(ctx context.Context, userID int32, scope domain.Scope, message string) (*domain.JoinRequest, error) {
	if err := checkRate(ctx, s.limiter, "create_join_request", userID); err != nil {
		return nil, err
	}

	open, err := s.requestsOpen(ctx, scope)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, domain.E(domain.CodeJoinRequestsClosed, "this scope does not accept join requests")
	}

	member, err := s.gate.isMember(ctx, scope, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, domain.E(domain.CodeAlreadyRegistered, "you are already registered in this scope")
	}

	req := &domain.JoinRequest{
		Scope:   scope,
		UserID:  userID,
		Message: message,
		Status:  domain.JoinRequestStatusPending,
	}
	// The partial unique index is the race guard: a concurrent duplicate
	// submission loses cleanly instead of producing a second row.
	if err := s.repos.JoinRequests.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.E(domain.CodeRequestAlreadyExists, "a pending request for this scope already exists")
		}
		return nil, err
	}
	return req, nil
}

// requestsOpen verifies the scope exists and accepts join requests. Team
// scopes never do; teams are joined by invite only.
func (s *joinRequestService) requestsOpen(ctx context.Context, scope domain.Scope) (bool, error) {
	switch scope.Type {
	case domain.ScopeOrg:
		org, err := s.repos.Orgs.GetByID(ctx, scope.ID)
		if err != nil {
			return false, translateScopeErr(err, scope.Type)
		}
		return org.JoinMode == domain.JoinModeRequest && org.AllowJoinRequests, nil
	case domain.ScopeEvent:
		event, err := s.repos.Events.GetByID(ctx, scope.ID)
		if err != nil {
			return false, translateScopeErr(err, scope.Type)
		}
		return event.JoinMode == domain.JoinModeRequest, nil
	}
	return false, domain.E(domain.CodeInvalidArgument, "join requests are only supported for organizations and events")
}

func (s *joinRequestService) ReviewJoinRequest(ctx context.Context, reviewerID, requestID int32, decision domain.ReviewDecision) (*domain.JoinRequest, error) {
	if err := checkRate(ctx, s.limiter, "review_join_request", reviewerID); err != nil {
		return nil, err
	}
	if decision != domain.ReviewApprove && decision != domain.ReviewDeny {
		return nil, domain.E(domain.CodeInvalidArgument, "decision must be APPROVE or DENY")
	}

	req, err := s.repos.JoinRequests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeRequestNotFound, "join request not found")
		}
		return nil, err
	}

	scopeName, err := s.gate.resolve(ctx, req.Scope)
	if err != nil {
		return nil, err
	}
	if err := s.gate.requireIssuer(ctx, req.Scope, reviewerID); err != nil {
		return nil, err
	}
	if req.Status != domain.JoinRequestStatusPending {
		return nil, domain.E(domain.CodeRequestAlreadyReviewed, "request has already been decided")
	}

	status := domain.JoinRequestStatusRejected
	if decision == domain.ReviewApprove {
		status = domain.JoinRequestStatusApproved
	}

	now := time.Now()
	// Review is decided exactly once: the conditional update refuses a
	// request that left PENDING between our read and the commit. On
	// approval the membership grant rides the same transaction.
	err = s.tx.WithTx(ctx, func(r repository.Repos) error {
		if decision == domain.ReviewApprove {
			if err := grant(ctx, r, req.Scope, req.UserID); err != nil {
				return err
			}
		}
		if err := r.JoinRequests.MarkReviewed(ctx, req.ID, status, reviewerID, now); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.E(domain.CodeRequestAlreadyReviewed, "request has already been decided")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	req.Status = status
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &now

	s.notifyRequester(ctx, req, scopeName)
	return req, nil
}

// notifyRequester delivers the decision in-app and by email, best-effort.
func (s *joinRequestService) notifyRequester(ctx context.Context, req *domain.JoinRequest, scopeName string) {
	approved := req.Status == domain.JoinRequestStatusApproved
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}

	note := &domain.Notification{
		UserID:  req.UserID,
		Title:   fmt.Sprintf("Join request %s", outcome),
		Message: fmt.Sprintf("Your request to join %s was %s.", scopeName, outcome),
		Attributes: map[string]string{
			"scope_type": string(req.Scope.Type),
			"scope_id":   fmt.Sprintf("%d", req.Scope.ID),
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	}
	if err := s.repos.Notifications.Create(ctx, note); err != nil {
		logger.Warn("join request notification failed", "request_id", req.ID, "error", err)
	}

	user, err := s.repos.Users.GetByID(ctx, req.UserID)
	if err != nil {
		logger.Warn("join request email lookup failed", "request_id", req.ID, "error", err)
		return
	}
	if err := s.emailSvc.SendRequestDecision(ctx, user.Email, scopeName, approved); err != nil {
		logger.Warn("join request email failed", "request_id", req.ID, "error", err)
	}
}

func (s *joinRequestService) ListPendingRequests(ctx context.Context, callerID int32, scope domain.Scope) ([]domain.JoinRequest, error) {
	if _, err := s.gate.resolve(ctx, scope); err != nil {
		return nil, err
	}
	if err := s.gate.requireIssuer(ctx, scope, callerID); err != nil {
		return nil, err
	}
	return s.repos.JoinRequests.ListPendingByScope(ctx, scope)
}
