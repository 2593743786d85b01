package postgres_test

import (
	"context"
	"testing"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var joinRequestCols = []string{"id", "scope_type", "scope_id", "user_id", "message", "status", "created_on", "reviewed_by", "reviewed_at"}

func TestJoinRequestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewJoinRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		req := &domain.JoinRequest{
			Scope:   domain.OrgScope(1),
			UserID:  20,
			Message: "please let me in",
			Status:  domain.JoinRequestStatusPending,
		}

		mock.ExpectQuery("INSERT INTO join_requests").
			WithArgs(req.Scope.Type, req.Scope.ID, req.UserID, req.Message, req.Status, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(3, time.Now()))

		err := repo.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), req.ID)
	})

	t.Run("PendingDuplicate", func(t *testing.T) {
		req := &domain.JoinRequest{
			Scope:  domain.OrgScope(1),
			UserID: 20,
			Status: domain.JoinRequestStatusPending,
		}

		mock.ExpectQuery("INSERT INTO join_requests").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, req)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestJoinRequestRepository_GetPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewJoinRequestRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(joinRequestCols).
			AddRow(3, "ORG", 1, 20, "please let me in", "PENDING", time.Now(), nil, nil)

		mock.ExpectQuery("SELECT (.+) FROM join_requests").
			WithArgs(domain.ScopeOrg, int32(1), int32(20), domain.JoinRequestStatusPending).
			WillReturnRows(rows)

		req, err := repo.GetPending(ctx, domain.OrgScope(1), 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(3), req.ID)
		assert.Nil(t, req.ReviewedBy)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM join_requests").
			WithArgs(domain.ScopeOrg, int32(1), int32(99), domain.JoinRequestStatusPending).
			WillReturnRows(sqlmock.NewRows(joinRequestCols))

		_, err := repo.GetPending(ctx, domain.OrgScope(1), 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestJoinRequestRepository_MarkReviewed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewJoinRequestRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE join_requests SET status").
			WithArgs(domain.JoinRequestStatusApproved, int32(10), now, int32(3), domain.JoinRequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkReviewed(ctx, 3, domain.JoinRequestStatusApproved, 10, now)
		assert.NoError(t, err)
	})

	t.Run("AlreadyReviewed", func(t *testing.T) {
		mock.ExpectExec("UPDATE join_requests SET status").
			WithArgs(domain.JoinRequestStatusRejected, int32(11), now, int32(3), domain.JoinRequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkReviewed(ctx, 3, domain.JoinRequestStatusRejected, 11, now)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
