package repository

import (
	"context"

	"fleetmetrics/internal/model"
)

// UserRepository defines credential lookups. Account provisioning is limited
// to idempotent seeding; there is no user management surface.
type UserRepository interface {
	// FindByUsername returns a user by unique username. Missing rows surface
	// as sql.ErrNoRows.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// CreateIfAbsent inserts a user unless the username already exists.
	// Existing rows are left untouched.
	CreateIfAbsent(ctx context.Context, username, hashedPassword string) error
}
