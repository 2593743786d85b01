package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type staffRepository struct {
	db DBTX
}

func NewStaffRepository(db DBTX) repository.StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Add(ctx context.Context, m *domain.EventStaffMembership) error {
	query := `INSERT INTO event_staff (event_id, user_id, role, added_on)
	          VALUES ($1, $2, $3, $4) RETURNING added_on`
	err := r.db.QueryRowContext(ctx, query, m.EventID, m.UserID, m.Role, time.Now()).Scan(&m.AddedOn)
	return translateErr(err)
}

func (r *staffRepository) Get(ctx context.Context, eventID, userID int32) (*domain.EventStaffMembership, error) {
	m := &domain.EventStaffMembership{}
	query := `SELECT event_id, user_id, role, added_on FROM event_staff WHERE event_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&m.EventID, &m.UserID, &m.Role, &m.AddedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return m, nil
}

func (r *staffRepository) Remove(ctx context.Context, eventID, userID int32) error {
	query := `DELETE FROM event_staff WHERE event_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, eventID, userID)
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

func (r *staffRepository) ListByEvent(ctx context.Context, eventID int32) ([]domain.EventStaffMembership, error) {
	query := `SELECT event_id, user_id, role, added_on FROM event_staff WHERE event_id = $1 ORDER BY added_on`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []domain.EventStaffMembership
	for rows.Next() {
		var m domain.EventStaffMembership
		if err := rows.Scan(&m.EventID, &m.UserID, &m.Role, &m.AddedOn); err != nil {
			return nil, err
		}
		staff = append(staff, m)
	}
	return staff, rows.Err()
}
