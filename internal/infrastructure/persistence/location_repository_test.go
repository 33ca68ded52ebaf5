package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/stockops/internal/domain/shared"
	"github.com/erp/stockops/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
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

	return gormDB, mock, mockDB
}

func TestGormLocationRepository_FindByID(t *testing.T) {
	t.Run("finds existing location", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLocationRepository(db)

		locationID := uuid.New()
		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "usage", "warehouse_id"}).
			AddRow(locationID, "WH/Stock", "internal", warehouseID)

		mock.ExpectQuery(`SELECT \* FROM "stock_locations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(locationID, 1).
			WillReturnRows(rows)

		loc, err := repo.FindByID(context.Background(), locationID)

		assert.NoError(t, err)
		require.NotNil(t, loc)
		assert.Equal(t, locationID, loc.ID)
		assert.Equal(t, "WH/Stock", loc.Name)
		assert.Equal(t, stock.UsageInternal, loc.Usage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing location", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLocationRepository(db)

		locationID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "stock_locations" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(locationID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		loc, err := repo.FindByID(context.Background(), locationID)

		assert.Nil(t, loc)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLocationRepository_FindByUsage(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormLocationRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "usage"}).
		AddRow(uuid.New(), "Customers", "customer").
		AddRow(uuid.New(), "Online Customers", "customer")

	mock.ExpectQuery(`SELECT \* FROM "stock_locations" WHERE usage = \$1 ORDER BY name ASC`).
		WithArgs(stock.UsageCustomer).
		WillReturnRows(rows)

	locations, err := repo.FindByUsage(context.Background(), stock.UsageCustomer)

	assert.NoError(t, err)
	assert.Len(t, locations, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPickingRepository_Count(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormPickingRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_pickings" WHERE state = \$1`).
		WithArgs("assigned").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	filter := shared.Filter{Filters: map[string]any{"state": "assigned"}}
	count, err := repo.Count(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
