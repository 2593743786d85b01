package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type organizationRepository struct {
	db DBTX
}

func NewOrganizationRepository(db DBTX) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO orgs (slug, name, description, join_mode, allow_join_requests, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, o.Slug, o.Name, o.Description, o.JoinMode, o.AllowJoinRequests, time.Now()).Scan(&o.ID, &o.CreatedOn)
	return translateErr(err)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, slug, name, description, join_mode, allow_join_requests, created_on FROM orgs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Slug, &o.Name, &o.Description, &o.JoinMode, &o.AllowJoinRequests, &o.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return o, nil
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, slug, name, description, join_mode, allow_join_requests, created_on FROM orgs WHERE slug = $1`
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&o.ID, &o.Slug, &o.Name, &o.Description, &o.JoinMode, &o.AllowJoinRequests, &o.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return o, nil
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE orgs SET name = $1, description = $2, join_mode = $3, allow_join_requests = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, o.Name, o.Description, o.JoinMode, o.AllowJoinRequests, o.ID)
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

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, slug, name, description, join_mode, allow_join_requests, created_on FROM orgs ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Slug, &o.Name, &o.Description, &o.JoinMode, &o.AllowJoinRequests, &o.CreatedOn); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}
