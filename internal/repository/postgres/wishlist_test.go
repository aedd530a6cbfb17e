package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"darna-backend/internal/repository/postgres"
)

func TestWishlistRepository_Toggle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewWishlistRepository(db)
	ctx := context.Background()

	t.Run("RemoveWhenAlreadySaved", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM wishlists").
			WithArgs("user-1", "prop-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		saved, err := repo.Toggle(ctx, "user-1", "prop-1")
		assert.NoError(t, err)
		assert.False(t, saved)
	})

	t.Run("AddWhenAbsent", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM wishlists").
			WithArgs("user-1", "prop-2").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO wishlists").
			WithArgs("user-1", "prop-2", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		saved, err := repo.Toggle(ctx, "user-1", "prop-2")
		assert.NoError(t, err)
		assert.True(t, saved)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
