package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/security"
)

// InviteConfig tunes the invite lifecycle.
type InviteConfig struct {
	// DefaultTTL is applied when the issuer does not supply one.
	DefaultTTL time.Duration
	// CountRedundantLinkUses preserves the behavior of charging a link use
	// even when the redeemer already holds the membership.
	CountRedundantLinkUses bool
}

type inviteService struct {
	repos    repository.Repos
	tx       repository.Tx
	gate     *scopeGate
	access   AccessService
	emailSvc EmailService
	limiter  ratelimit.Limiter
	cfg      InviteConfig
}

func NewInviteService(
	repos repository.Repos,
	tx repository.Tx,
	access AccessService,
	emailSvc EmailService,
	limiter ratelimit.Limiter,
	cfg InviteConfig,
) InviteService {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = 7 * 24 * time.Hour
	}
	return &inviteService{
		repos:    repos,
		tx:       tx,
		gate:     newScopeGate(repos, access),
		access:   access,
		emailSvc: emailSvc,
		limiter:  limiter,
		cfg:      cfg,
	}
}

func (s *inviteService) CreateEmailInvite(ctx context.Context, issuerID int32, scope domain.Scope, email, message string, ttl time.Duration) (*domain.EmailInvite, error) {
	if err := checkRate(ctx, s.limiter, "create_email_invite", issuerID); err != nil {
		return nil, err
	}

	scopeName, err := s.gate.resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	if err := s.gate.requireIssuer(ctx, scope, issuerID); err != nil {
		return nil, err
	}

	email = domain.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.E(domain.CodeInvalidArgument, "a valid recipient email is required")
	}
	if ttl < 0 {
		return nil, domain.E(domain.CodeInvalidArgument, "invite ttl must be positive")
	}
	if ttl == 0 {
		ttl = s.cfg.DefaultTTL
	}

	// Precondition order matters: an existing membership wins over an
	// outstanding invite for the same address.
	if user, err := s.repos.Users.GetByEmail(ctx, email); err == nil {
		member, err := s.gate.isMember(ctx, scope, user.ID)
		if err != nil {
			return nil, err
		}
		if member {
			return nil, domain.E(domain.CodeAlreadyRegistered, "recipient is already registered in this scope")
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.repos.EmailInvites.GetPending(ctx, scope, email); err == nil {
		return nil, domain.E(domain.CodeDuplicatePendingInvite, "a pending invite for this address already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	token, err := security.NewInviteToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(ttl)
	invite := &domain.EmailInvite{
		Scope:     scope,
		Email:     email,
		Token:     token,
		Status:    domain.InviteStatusPending,
		Message:   message,
		ExpiresAt: &expiresAt,
		CreatedBy: issuerID,
	}
	if err := s.repos.EmailInvites.Create(ctx, invite); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.E(domain.CodeDuplicatePendingInvite, "a pending invite for this address already exists")
		}
		return nil, err
	}

	// Best-effort delivery: the invite stands even if the email fails.
	if err := s.emailSvc.SendInvitation(ctx, email, scopeName, token, message); err != nil {
		logger.Warn("invitation email failed", "scope_type", scope.Type, "scope_id", scope.ID, "error", err)
	}

	return invite, nil
}

func (s *inviteService) AcceptEmailInvite(ctx context.Context, token string, userID int32, userEmail string) (*domain.EmailInvite, error) {
	if err := checkRate(ctx, s.limiter, "accept_email_invite", userID); err != nil {
		return nil, err
	}

	invite, err := s.repos.EmailInvites.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeInviteInvalid, "invite token is not valid")
		}
		return nil, err
	}
	if invite.Status == domain.InviteStatusExpired {
		return nil, domain.E(domain.CodeInviteExpired, "invite has expired")
	}
	if invite.Status != domain.InviteStatusPending {
		return nil, domain.E(domain.CodeInviteInvalid, "invite is no longer open")
	}
	now := time.Now()
	if invite.Expired(now) {
		return nil, domain.E(domain.CodeInviteExpired, "invite has expired")
	}
	if domain.NormalizeEmail(userEmail) != invite.Email {
		return nil, domain.E(domain.CodeEmailMismatch, "invite was issued to a different email address")
	}

	// Membership grant and status flip commit together. The conditional
	// status update arbitrates concurrent double-accepts of one token.
	err = s.tx.WithTx(ctx, func(r repository.Repos) error {
		if err := grant(ctx, r, invite.Scope, userID); err != nil {
			return err
		}
		if err := r.EmailInvites.MarkAccepted(ctx, invite.ID, userID, now); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.E(domain.CodeInviteInvalid, "invite is no longer open")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invite.Status = domain.InviteStatusAccepted
	invite.AcceptedBy = &userID
	invite.AcceptedAt = &now

	s.notifyIssuer(ctx, invite)
	return invite, nil
}

// notifyIssuer tells the inviter their invite was accepted, best-effort.
func (s *inviteService) notifyIssuer(ctx context.Context, invite *domain.EmailInvite) {
	note := &domain.Notification{
		UserID:  invite.CreatedBy,
		Title:   "Invitation accepted",
		Message: fmt.Sprintf("%s accepted your invitation.", invite.Email),
		Attributes: map[string]string{
			"scope_type": string(invite.Scope.Type),
			"scope_id":   fmt.Sprintf("%d", invite.Scope.ID),
			"invite_id":  fmt.Sprintf("%d", invite.ID),
		},
	}
	if err := s.repos.Notifications.Create(ctx, note); err != nil {
		logger.Warn("invite acceptance notification failed", "invite_id", invite.ID, "error", err)
	}
}

func (s *inviteService) CancelEmailInvite(ctx context.Context, issuerID int32, token string) error {
	if err := checkRate(ctx, s.limiter, "cancel_email_invite", issuerID); err != nil {
		return err
	}

	invite, err := s.repos.EmailInvites.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeInviteInvalid, "invite token is not valid")
		}
		return err
	}
	if err := s.gate.requireIssuer(ctx, invite.Scope, issuerID); err != nil {
		return err
	}

	if err := s.repos.EmailInvites.MarkCancelled(ctx, invite.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeInviteInvalid, "invite is no longer open")
		}
		return err
	}
	return nil
}

func (s *inviteService) ListEmailInvites(ctx context.Context, callerID int32, scope domain.Scope) ([]domain.EmailInvite, error) {
	if _, err := s.gate.resolve(ctx, scope); err != nil {
		return nil, err
	}
	if err := s.gate.requireIssuer(ctx, scope, callerID); err != nil {
		return nil, err
	}
	return s.repos.EmailInvites.ListByScope(ctx, scope)
}

func (s *inviteService) CreateInviteLink(ctx context.Context, issuerID int32, scope domain.Scope, note string, maxUses *int32, ttl time.Duration) (*domain.InviteLink, error) {
	if err := checkRate(ctx, s.limiter, "create_invite_link", issuerID); err != nil {
		return nil, err
	}

	if _, err := s.gate.resolve(ctx, scope); err != nil {
		return nil, err
	}
	if err := s.gate.requireIssuer(ctx, scope, issuerID); err != nil {
		return nil, err
	}
	if maxUses != nil && *maxUses <= 0 {
		return nil, domain.E(domain.CodeInvalidArgument, "max uses must be positive")
	}
	if ttl < 0 {
		return nil, domain.E(domain.CodeInvalidArgument, "link ttl must be positive")
	}

	token, err := security.NewInviteToken()
	if err != nil {
		return nil, err
	}

	link := &domain.InviteLink{
		Scope:     scope,
		Token:     token,
		Status:    domain.LinkStatusPending,
		MaxUses:   maxUses,
		Note:      note,
		CreatedBy: issuerID,
	}
	if ttl > 0 {
		expiresAt := time.Now().Add(ttl)
		link.ExpiresAt = &expiresAt
	}
	if err := s.repos.InviteLinks.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *inviteService) AcceptInviteLink(ctx context.Context, token string, userID int32) (*domain.InviteLink, error) {
	if err := checkRate(ctx, s.limiter, "accept_invite_link", userID); err != nil {
		return nil, err
	}

	link, err := s.repos.InviteLinks.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.E(domain.CodeLinkInvalid, "link token is not valid")
		}
		return nil, err
	}
	now := time.Now()
	if err := classifyLink(link, now); err != nil {
		return nil, err
	}

	// The membership grant and the usage increment are one transaction.
	// Consume re-evaluates the whole validity predicate against fresh
	// state, so losing a race on the last use rolls the grant back.
	var result *domain.InviteLink
	err = s.tx.WithTx(ctx, func(r repository.Repos) error {
		txGate := newScopeGate(r, s.access)
		alreadyMember, err := txGate.isMember(ctx, link.Scope, userID)
		if err != nil {
			return err
		}
		if err := grant(ctx, r, link.Scope, userID); err != nil {
			return err
		}
		if alreadyMember && !s.cfg.CountRedundantLinkUses {
			result = link
			return nil
		}

		consumed, err := r.InviteLinks.Consume(ctx, token, now)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return s.classifyConsumeRefusal(ctx, r, token, now)
			}
			return err
		}
		result = consumed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// classifyConsumeRefusal re-reads a link whose conditional increment matched
// no row and maps the refusal to a precise domain code.
func (s *inviteService) classifyConsumeRefusal(ctx context.Context, r repository.Repos, token string, now time.Time) error {
	link, err := r.InviteLinks.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeLinkInvalid, "link token is not valid")
		}
		return err
	}
	if err := classifyLink(link, now); err != nil {
		return err
	}
	return domain.E(domain.CodeLinkInvalid, "link token is not valid")
}

func classifyLink(link *domain.InviteLink, now time.Time) error {
	// Expiry wins over status: the cron sweep flips expired links to
	// REVOKED, and the caller should see the same code either way.
	if link.Expired(now) {
		return domain.E(domain.CodeLinkExpired, "link has expired")
	}
	if link.Status != domain.LinkStatusPending {
		return domain.E(domain.CodeLinkInvalid, "link has been revoked")
	}
	if link.Spent() {
		return domain.E(domain.CodeLinkMaxUsesReached, "link has reached its usage cap")
	}
	return nil
}

func (s *inviteService) RevokeInviteLink(ctx context.Context, issuerID int32, token string) error {
	if err := checkRate(ctx, s.limiter, "revoke_invite_link", issuerID); err != nil {
		return err
	}

	link, err := s.repos.InviteLinks.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeLinkInvalid, "link token is not valid")
		}
		return err
	}
	if err := s.gate.requireIssuer(ctx, link.Scope, issuerID); err != nil {
		return err
	}

	if err := s.repos.InviteLinks.Revoke(ctx, link.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.E(domain.CodeLinkInvalid, "link is no longer open")
		}
		return err
	}
	return nil
}

func (s *inviteService) ListInviteLinks(ctx context.Context, callerID int32, scope domain.Scope) ([]domain.InviteLink, error) {
	if _, err := s.gate.resolve(ctx, scope); err != nil {
		return nil, err
	}
	if err := s.gate.requireIssuer(ctx, scope, callerID); err != nil {
		return nil, err
	}
	return s.repos.InviteLinks.ListByScope(ctx, scope)
}
