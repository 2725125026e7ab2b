package postgres

import (
	"context"
	"database/sql"

	"fleetmetrics/internal/model"
	"fleetmetrics/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// FindByUsername fetches a single user by unique username.
func (r *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
		SELECT id, username, hashed_password
		FROM users
		WHERE username = $1
	`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, username).Scan(&u.ID, &u.Username, &u.HashedPassword); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateIfAbsent inserts a user, leaving any existing row with the same
// username untouched.
func (r *UserPostgres) CreateIfAbsent(ctx context.Context, username, hashedPassword string) error {
	const q = `
		INSERT INTO users (username, hashed_password)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, username, hashedPassword)
	return err
}
