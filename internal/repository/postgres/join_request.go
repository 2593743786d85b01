package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type joinRequestRepository struct {
	db DBTX
}

func NewJoinRequestRepository(db DBTX) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

const joinRequestColumns = `id, scope_type, scope_id, user_id, message, status, created_on, reviewed_by, reviewed_at`

// Create relies on the partial unique index over PENDING (scope, user) rows:
// the loser of a concurrent duplicate submission gets ErrDuplicate.
func (r *joinRequestRepository) Create(ctx context.Context, req *domain.JoinRequest) error {
	query := `INSERT INTO join_requests (scope_type, scope_id, user_id, message, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		req.Scope.Type, req.Scope.ID, req.UserID, req.Message, req.Status, time.Now(),
	).Scan(&req.ID, &req.CreatedOn)
	return translateErr(err)
}

func (r *joinRequestRepository) scanOne(row interface{ Scan(...any) error }) (*domain.JoinRequest, error) {
	req := &domain.JoinRequest{}
	err := row.Scan(&req.ID, &req.Scope.Type, &req.Scope.ID, &req.UserID, &req.Message,
		&req.Status, &req.CreatedOn, &req.ReviewedBy, &req.ReviewedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return req, nil
}

func (r *joinRequestRepository) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *joinRequestRepository) GetPending(ctx context.Context, scope domain.Scope, userID int32) (*domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests
	          WHERE scope_type = $1 AND scope_id = $2 AND user_id = $3 AND status = $4`
	return r.scanOne(r.db.QueryRowContext(ctx, query, scope.Type, scope.ID, userID, domain.JoinRequestStatusPending))
}

// MarkReviewed stamps the review exactly once: the status guard makes a
// second review lose with ErrNotFound instead of overwriting the first.
func (r *joinRequestRepository) MarkReviewed(ctx context.Context, id int32, status domain.JoinRequestStatus, reviewerID int32, at time.Time) error {
	query := `UPDATE join_requests SET status = $1, reviewed_by = $2, reviewed_at = $3
	          WHERE id = $4 AND status = $5`
	result, err := r.db.ExecContext(ctx, query, status, reviewerID, at, id, domain.JoinRequestStatusPending)
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

func (r *joinRequestRepository) ListPendingByScope(ctx context.Context, scope domain.Scope) ([]domain.JoinRequest, error) {
	query := `SELECT ` + joinRequestColumns + ` FROM join_requests
	          WHERE scope_type = $1 AND scope_id = $2 AND status = $3 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, scope.Type, scope.ID, domain.JoinRequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.JoinRequest
	for rows.Next() {
		var req domain.JoinRequest
		if err := rows.Scan(&req.ID, &req.Scope.Type, &req.Scope.ID, &req.UserID, &req.Message,
			&req.Status, &req.CreatedOn, &req.ReviewedBy, &req.ReviewedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
