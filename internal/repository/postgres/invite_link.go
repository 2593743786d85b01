package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type inviteLinkRepository struct {
	db DBTX
}

func NewInviteLinkRepository(db DBTX) repository.InviteLinkRepository {
	return &inviteLinkRepository{db: db}
}

const linkColumns = `id, scope_type, scope_id, token, status, max_uses, uses, note, expires_at, created_by, created_on`

func (r *inviteLinkRepository) Create(ctx context.Context, l *domain.InviteLink) error {
	query := `INSERT INTO invite_links (scope_type, scope_id, token, status, max_uses, uses, note, expires_at, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		l.Scope.Type, l.Scope.ID, l.Token, l.Status, l.MaxUses, l.Note, l.ExpiresAt, l.CreatedBy, time.Now(),
	).Scan(&l.ID, &l.CreatedOn)
	return translateErr(err)
}

func (r *inviteLinkRepository) scanOne(row interface{ Scan(...any) error }) (*domain.InviteLink, error) {
	l := &domain.InviteLink{}
	err := row.Scan(&l.ID, &l.Scope.Type, &l.Scope.ID, &l.Token, &l.Status,
		&l.MaxUses, &l.Uses, &l.Note, &l.ExpiresAt, &l.CreatedBy, &l.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return l, nil
}

func (r *inviteLinkRepository) GetByToken(ctx context.Context, token string) (*domain.InviteLink, error) {
	query := `SELECT ` + linkColumns + ` FROM invite_links WHERE token = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

// Consume is the race arbiter for the usage cap: the predicate and the
// increment happen in one conditional UPDATE, so two concurrent redemptions
// of the last remaining use cannot both succeed.
func (r *inviteLinkRepository) Consume(ctx context.Context, token string, now time.Time) (*domain.InviteLink, error) {
	query := `UPDATE invite_links SET uses = uses + 1
	          WHERE token = $1 AND status = $2
	            AND (expires_at IS NULL OR expires_at > $3)
	            AND (max_uses IS NULL OR uses < max_uses)
	          RETURNING ` + linkColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, token, domain.LinkStatusPending, now))
}

func (r *inviteLinkRepository) Revoke(ctx context.Context, id int32) error {
	query := `UPDATE invite_links SET status = $1 WHERE id = $2 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, domain.LinkStatusRevoked, id, domain.LinkStatusPending)
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

func (r *inviteLinkRepository) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.InviteLink, error) {
	query := `SELECT ` + linkColumns + ` FROM invite_links WHERE scope_type = $1 AND scope_id = $2 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, scope.Type, scope.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.InviteLink
	for rows.Next() {
		var l domain.InviteLink
		if err := rows.Scan(&l.ID, &l.Scope.Type, &l.Scope.ID, &l.Token, &l.Status,
			&l.MaxUses, &l.Uses, &l.Note, &l.ExpiresAt, &l.CreatedBy, &l.CreatedOn); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *inviteLinkRepository) RevokeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE invite_links SET status = $1
	          WHERE status = $2 AND expires_at IS NOT NULL AND expires_at <= $3`
	result, err := r.db.ExecContext(ctx, query, domain.LinkStatusRevoked, domain.LinkStatusPending, now)
	if err != nil {
		return 0, translateErr(err)
	}
	return result.RowsAffected()
}
