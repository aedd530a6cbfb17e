package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository/postgres"
)

func TestPropertyRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPropertyRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE properties SET status").
			WithArgs(domain.PropertyStatusActive, "", "admin-1", sqlmock.AnyArg(), "prop-1", domain.PropertyStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "prop-1", domain.PropertyStatusPending, domain.PropertyStatusActive, "", "admin-1")
		assert.NoError(t, err)
	})

	t.Run("StaleStatusIsConflict", func(t *testing.T) {
		// The guard clause matches no row when the stored status moved on,
		// so the second of two racing moderators gets a conflict.
		mock.ExpectExec("UPDATE properties SET status").
			WithArgs(domain.PropertyStatusActive, "", "admin-2", sqlmock.AnyArg(), "prop-1", domain.PropertyStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "prop-1", domain.PropertyStatusPending, domain.PropertyStatusActive, "", "admin-2")
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPropertyRepository(db)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM properties WHERE id").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "missing")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPropertyRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM properties").
			WithArgs("prop-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "prop-1"))
	})

	t.Run("MissingRowIsNotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM properties").
			WithArgs("prop-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "prop-2")
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
