package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type eventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (org_id, slug, name, description, join_mode, capacity, starts_on, ends_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, e.OrgID, e.Slug, e.Name, e.Description, e.JoinMode, e.Capacity, e.StartsOn, e.EndsOn, time.Now()).Scan(&e.ID, &e.CreatedOn)
	return translateErr(err)
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	e := &domain.Event{}
	query := `SELECT id, org_id, slug, name, description, join_mode, capacity, starts_on, ends_on, created_on FROM events WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.OrgID, &e.Slug, &e.Name, &e.Description, &e.JoinMode, &e.Capacity, &e.StartsOn, &e.EndsOn, &e.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, orgID int32, slug string) (*domain.Event, error) {
	e := &domain.Event{}
	query := `SELECT id, org_id, slug, name, description, join_mode, capacity, starts_on, ends_on, created_on FROM events WHERE org_id = $1 AND slug = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, slug).Scan(&e.ID, &e.OrgID, &e.Slug, &e.Name, &e.Description, &e.JoinMode, &e.Capacity, &e.StartsOn, &e.EndsOn, &e.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET name = $1, description = $2, join_mode = $3, capacity = $4, starts_on = $5, ends_on = $6 WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query, e.Name, e.Description, e.JoinMode, e.Capacity, e.StartsOn, e.EndsOn, e.ID)
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

func (r *eventRepository) ListByOrg(ctx context.Context, orgID int32) ([]domain.Event, error) {
	query := `SELECT id, org_id, slug, name, description, join_mode, capacity, starts_on, ends_on, created_on FROM events WHERE org_id = $1 ORDER BY starts_on`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.OrgID, &e.Slug, &e.Name, &e.Description, &e.JoinMode, &e.Capacity, &e.StartsOn, &e.EndsOn, &e.CreatedOn); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
