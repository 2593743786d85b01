package postgres

import (
	"context"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/repository"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, time.Now()).Scan(&u.ID, &u.CreatedOn)
	return translateErr(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, created_on FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedOn)
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}
