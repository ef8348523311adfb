package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("normalises the email before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "deleted", "email", "full_name", "password_hash", "is_staff", "is_superuser", "is_active"}).
			AddRow(userID, now, now, false, "pm@example.com", "Project Manager", "hash", false, false, true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE deleted = \$1 AND email = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(false, "pm@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "  PM@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "pm@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing user to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "users"`).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
