package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type teamRepository struct {
	db DBTX
}

func NewTeamRepository(db DBTX) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, t *domain.Team) error {
	query := `INSERT INTO teams (event_id, name, created_by, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, t.EventID, t.Name, t.CreatedBy, time.Now()).Scan(&t.ID, &t.CreatedOn)
	return translateErr(err)
}

func (r *teamRepository) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	t := &domain.Team{}
	query := `SELECT id, event_id, name, created_by, created_on FROM teams WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.EventID, &t.Name, &t.CreatedBy, &t.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return t, nil
}

func (r *teamRepository) ListByEvent(ctx context.Context, eventID int32) ([]domain.Team, error) {
	query := `SELECT id, event_id, name, created_by, created_on FROM teams WHERE event_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.CreatedBy, &t.CreatedOn); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *teamRepository) AddMember(ctx context.Context, m *domain.TeamMembership) error {
	query := `INSERT INTO team_memberships (team_id, user_id, joined_on)
	          VALUES ($1, $2, $3) RETURNING joined_on`
	err := r.db.QueryRowContext(ctx, query, m.TeamID, m.UserID, time.Now()).Scan(&m.JoinedOn)
	return translateErr(err)
}

func (r *teamRepository) GetMember(ctx context.Context, teamID, userID int32) (*domain.TeamMembership, error) {
	m := &domain.TeamMembership{}
	query := `SELECT team_id, user_id, joined_on FROM team_memberships WHERE team_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&m.TeamID, &m.UserID, &m.JoinedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return m, nil
}

func (r *teamRepository) ListMembers(ctx context.Context, teamID int32) ([]domain.TeamMembership, error) {
	query := `SELECT team_id, user_id, joined_on FROM team_memberships WHERE team_id = $1 ORDER BY joined_on`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMembership
	for rows.Next() {
		var m domain.TeamMembership
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.JoinedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
