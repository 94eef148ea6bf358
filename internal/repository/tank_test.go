package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/scottj1426/reef-for-all/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTankRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTankRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tanks"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tank := &models.Tank{
		Name:   "Nano Reef",
		Size:   25,
		UserID: "u1",
	}
	require.NoError(t, repo.Create(ctx, tank))
	assert.NotEmpty(t, tank.ID)
	assert.Equal(t, models.TankTypeReef, tank.Type, "hook applies the default type")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTankRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTankRepository(db)
	ctx := context.Background()

	t.Run("found with owner projection", func(t *testing.T) {
		tankRows := sqlmock.NewRows([]string{"id", "name", "size", "type", "user_id"}).
			AddRow("t1", "Main Display Reef", 120, "reef", "u1")
		mock.ExpectQuery(`SELECT \* FROM "tanks" WHERE id`).
			WithArgs("t1", 1).
			WillReturnRows(tankRows)

		ownerRows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "avatar_url"}).
			AddRow("u1", "reefmaster", "John", "Doe", "https://i.pravatar.cc/150?img=1")
		mock.ExpectQuery(`FROM "users"`).
			WithArgs("u1").
			WillReturnRows(ownerRows)

		tank, err := repo.GetByID(ctx, "t1")
		require.NoError(t, err)
		assert.Equal(t, "Main Display Reef", tank.Name)
		require.NotNil(t, tank.User)
		require.NotNil(t, tank.User.Username)
		assert.Equal(t, "reefmaster", *tank.User.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "tanks" WHERE id`).
			WithArgs("missing", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		tank, err := repo.GetByID(ctx, "missing")
		assert.Error(t, err)
		assert.Nil(t, tank)
		assert.Equal(t, fiber.StatusNotFound, models.ErrorStatus(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTankRepository_ListAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTankRepository(db)
	ctx := context.Background()

	tankRows := sqlmock.NewRows([]string{"id", "name", "size", "type", "user_id"}).
		AddRow("t2", "Nano Reef", 25, "reef", "u1").
		AddRow("t1", "Research Tank", 75, "fowlr", "u2")
	mock.ExpectQuery(`SELECT \* FROM "tanks" ORDER BY created_at DESC`).
		WillReturnRows(tankRows)

	ownerRows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "avatar_url"}).
		AddRow("u1", "reefmaster", "John", "Doe", "").
		AddRow("u2", "coralkeeper", "Jane", "Smith", "")
	mock.ExpectQuery(`FROM "users"`).
		WillReturnRows(ownerRows)

	tanks, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tanks, 2)
	assert.Equal(t, "t2", tanks[0].ID)
	require.NotNil(t, tanks[0].User)
	assert.Equal(t, "reefmaster", *tanks[0].User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTankRepository_ListByUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTankRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "size", "type", "user_id"}).
		AddRow("t1", "Nano Reef", 25, "reef", "u1")
	mock.ExpectQuery(`SELECT \* FROM "tanks" WHERE user_id`).
		WithArgs("u1").
		WillReturnRows(rows)

	tanks, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tanks, 1)
	assert.Nil(t, tanks[0].User, "per-owner listing does not embed the owner")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTankRepository_Update(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTankRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tanks" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	username := "reefmaster"
	tank := &models.Tank{
		ID:     "t1",
		Name:   "Renamed Tank",
		Size:   120,
		Type:   models.TankTypeReef,
		UserID: "u1",
		User:   &models.TankOwner{ID: "u1", Username: &username},
	}
	require.NoError(t, repo.Update(ctx, tank))
	assert.NotNil(t, tank.User, "owner projection is restored after the write")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTankRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTankRepository(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "tanks"`).
			WithArgs("t1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, "t1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "tanks"`).
			WithArgs("t1").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := repo.Delete(ctx, "t1")
		assert.Error(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, models.ErrorStatus(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
