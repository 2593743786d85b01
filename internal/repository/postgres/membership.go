package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type membershipRepository struct {
	db DBTX
}

func NewMembershipRepository(db DBTX) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Add(ctx context.Context, m *domain.OrgMembership) error {
	query := `INSERT INTO org_memberships (org_id, user_id, role, joined_on)
	          VALUES ($1, $2, $3, $4) RETURNING joined_on`
	err := r.db.QueryRowContext(ctx, query, m.OrgID, m.UserID, m.Role, time.Now()).Scan(&m.JoinedOn)
	return translateErr(err)
}

func (r *membershipRepository) Get(ctx context.Context, orgID, userID int32) (*domain.OrgMembership, error) {
	m := &domain.OrgMembership{}
	query := `SELECT org_id, user_id, role, joined_on FROM org_memberships WHERE org_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, userID).Scan(&m.OrgID, &m.UserID, &m.Role, &m.JoinedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return m, nil
}

func (r *membershipRepository) UpdateRole(ctx context.Context, orgID, userID int32, role domain.OrgRole) error {
	query := `UPDATE org_memberships SET role = $1 WHERE org_id = $2 AND user_id = $3`
	result, err := r.db.ExecContext(ctx, query, role, orgID, userID)
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

func (r *membershipRepository) Remove(ctx context.Context, orgID, userID int32) error {
	query := `DELETE FROM org_memberships WHERE org_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, orgID, userID)
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

func (r *membershipRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.OrgMembership, error) {
	query := `SELECT org_id, user_id, role, joined_on FROM org_memberships WHERE org_id = $1 ORDER BY joined_on`
	return r.list(ctx, query, orgID)
}

func (r *membershipRepository) ListByUser(ctx context.Context, userID int32) ([]domain.OrgMembership, error) {
	query := `SELECT org_id, user_id, role, joined_on FROM org_memberships WHERE user_id = $1 ORDER BY joined_on`
	return r.list(ctx, query, userID)
}

func (r *membershipRepository) list(ctx context.Context, query string, arg any) ([]domain.OrgMembership, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.OrgMembership
	for rows.Next() {
		var m domain.OrgMembership
		if err := rows.Scan(&m.OrgID, &m.UserID, &m.Role, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *membershipRepository) CountByRole(ctx context.Context, orgID int32, role domain.OrgRole) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM org_memberships WHERE org_id = $1 AND role = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, role).Scan(&count)
	return count, err
}
