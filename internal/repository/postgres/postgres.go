package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventhub-backend/internal/repository"

	"github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository can run
// against the root connection or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repos
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		Repos: newRepos(db),
	}
}

func newRepos(db DBTX) repository.Repos {
	return repository.Repos{
		Users:         NewUserRepository(db),
		Orgs:          NewOrganizationRepository(db),
		Memberships:   NewMembershipRepository(db),
		Events:        NewEventRepository(db),
		Participants:  NewParticipantRepository(db),
		Staff:         NewStaffRepository(db),
		Teams:         NewTeamRepository(db),
		EmailInvites:  NewEmailInviteRepository(db),
		InviteLinks:   NewInviteLinkRepository(db),
		JoinRequests:  NewJoinRequestRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// WithTx runs fn against transaction-bound repositories at read-committed
// isolation (the lib/pq default). fn returning an error rolls back.
func (s *Store) WithTx(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newRepos(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}

const uniqueViolation = "23505"

// translateErr maps driver errors to the repository sentinels. Unique
// violations become ErrDuplicate so callers never see pq error codes.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
