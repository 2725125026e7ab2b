package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserPostgres_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "hashed_password"}).
			AddRow(1, "admin", "$2a$10$hash")

		mock.ExpectQuery("SELECT id, username, hashed_password").
			WithArgs("admin").
			WillReturnRows(rows)

		user, err := repo.FindByUsername(ctx, "admin")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "$2a$10$hash", user.HashedPassword)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username, hashed_password").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.FindByUsername(ctx, "ghost")

		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, user)
	})
}

func TestUserPostgres_CreateIfAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs("admin", "$2a$10$hash").
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateIfAbsent(ctx, "admin", "$2a$10$hash")

		assert.NoError(t, err)
	})

	t.Run("already present", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs("admin", "$2a$10$hash").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.CreateIfAbsent(ctx, "admin", "$2a$10$hash")

		assert.NoError(t, err)
	})
}
