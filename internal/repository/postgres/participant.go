package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type participantRepository struct {
	db DBTX
}

func NewParticipantRepository(db DBTX) repository.ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Add(ctx context.Context, p *domain.EventParticipant) error {
	query := `INSERT INTO event_participants (event_id, user_id, status, registered_on)
	          VALUES ($1, $2, $3, $4) RETURNING registered_on`
	err := r.db.QueryRowContext(ctx, query, p.EventID, p.UserID, p.Status, time.Now()).Scan(&p.RegisteredOn)
	return translateErr(err)
}

func (r *participantRepository) Get(ctx context.Context, eventID, userID int32) (*domain.EventParticipant, error) {
	p := &domain.EventParticipant{}
	query := `SELECT event_id, user_id, status, registered_on FROM event_participants WHERE event_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&p.EventID, &p.UserID, &p.Status, &p.RegisteredOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return p, nil
}

func (r *participantRepository) UpdateStatus(ctx context.Context, eventID, userID int32, status domain.ParticipantStatus) error {
	query := `UPDATE event_participants SET status = $1 WHERE event_id = $2 AND user_id = $3`
	result, err := r.db.ExecContext(ctx, query, status, eventID, userID)
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

func (r *participantRepository) ListByEvent(ctx context.Context, eventID int32) ([]domain.EventParticipant, error) {
	query := `SELECT event_id, user_id, status, registered_on FROM event_participants WHERE event_id = $1 ORDER BY registered_on`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []domain.EventParticipant
	for rows.Next() {
		var p domain.EventParticipant
		if err := rows.Scan(&p.EventID, &p.UserID, &p.Status, &p.RegisteredOn); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) CountActive(ctx context.Context, eventID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM event_participants WHERE event_id = $1 AND status = $2`
	err := r.db.QueryRowContext(ctx, query, eventID, domain.ParticipantRegistered).Scan(&count)
	return count, err
}
