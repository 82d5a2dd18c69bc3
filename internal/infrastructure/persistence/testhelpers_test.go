package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/community"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens an in-memory sqlite database with the full schema
func setupTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedHouse(t *testing.T, repo *GormHouseRepository, number string) *community.House {
	t.Helper()
	house, err := community.NewHouse(number, "Main St", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), house))
	return house
}

func seedResident(t *testing.T, repo *GormResidentRepository, houseID uint, email string) *community.Resident {
	t.Helper()
	resident, err := community.NewResident(houseID, "Jane", "", email, time.Time{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), resident))
	return resident
}

func seedDue(t *testing.T, repo *GormDueRepository, houseID uint, amount string) *community.Due {
	t.Helper()
	due, err := community.NewDue(houseID, nil, "Maintenance", decimal.RequireFromString(amount))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), due))
	return due
}
