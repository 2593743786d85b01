package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type emailInviteRepository struct {
	db DBTX
}

func NewEmailInviteRepository(db DBTX) repository.EmailInviteRepository {
	return &emailInviteRepository{db: db}
}

const inviteColumns = `id, scope_type, scope_id, email, token, status, message, expires_at, created_by, created_on, accepted_by, accepted_at`

func (r *emailInviteRepository) Create(ctx context.Context, inv *domain.EmailInvite) error {
	query := `INSERT INTO email_invites (scope_type, scope_id, email, token, status, message, expires_at, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		inv.Scope.Type, inv.Scope.ID, inv.Email, inv.Token, inv.Status, inv.Message, inv.ExpiresAt, inv.CreatedBy, time.Now(),
	).Scan(&inv.ID, &inv.CreatedOn)
	return translateErr(err)
}

func (r *emailInviteRepository) scanOne(row interface{ Scan(...any) error }) (*domain.EmailInvite, error) {
	inv := &domain.EmailInvite{}
	err := row.Scan(&inv.ID, &inv.Scope.Type, &inv.Scope.ID, &inv.Email, &inv.Token, &inv.Status,
		&inv.Message, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedOn, &inv.AcceptedBy, &inv.AcceptedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return inv, nil
}

func (r *emailInviteRepository) GetByToken(ctx context.Context, token string) (*domain.EmailInvite, error) {
	query := `SELECT ` + inviteColumns + ` FROM email_invites WHERE token = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

func (r *emailInviteRepository) GetPending(ctx context.Context, scope domain.Scope, email string) (*domain.EmailInvite, error) {
	query := `SELECT ` + inviteColumns + ` FROM email_invites
	          WHERE scope_type = $1 AND scope_id = $2 AND email = $3 AND status = $4`
	return r.scanOne(r.db.QueryRowContext(ctx, query, scope.Type, scope.ID, email, domain.InviteStatusPending))
}

func (r *emailInviteRepository) MarkAccepted(ctx context.Context, id, userID int32, at time.Time) error {
	query := `UPDATE email_invites SET status = $1, accepted_by = $2, accepted_at = $3
	          WHERE id = $4 AND status = $5`
	result, err := r.db.ExecContext(ctx, query, domain.InviteStatusAccepted, userID, at, id, domain.InviteStatusPending)
	if err != nil {
		return translateErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *emailInviteRepository) MarkCancelled(ctx context.Context, id int32) error {
	query := `UPDATE email_invites SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, domain.InviteStatusCancelled, id, domain.InviteStatusPending)
	if err != nil {
		return translateErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *emailInviteRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.EmailInvite, error) {
	query := `SELECT ` + inviteColumns + ` FROM email_invites WHERE scope_type = $1 AND scope_id = $2 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, scope.Type, scope.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.EmailInvite
	for rows.Next() {
		var inv domain.EmailInvite
		if err := rows.Scan(&inv.ID, &inv.Scope.Type, &inv.Scope.ID, &inv.Email, &inv.Token, &inv.Status,
			&inv.Message, &inv.ExpiresAt, &inv.CreatedBy, &inv.CreatedOn, &inv.AcceptedBy, &inv.AcceptedAt); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *emailInviteRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE email_invites SET status = $1
	          WHERE status = $2 AND expires_at IS NOT NULL AND expires_at <= $3`
	result, err := r.db.ExecContext(ctx, query, domain.InviteStatusExpired, domain.InviteStatusPending, now)
	if err != nil {
		return 0, translateErr(err)
	}
	return result.RowsAffected()
}
