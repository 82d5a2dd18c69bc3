//go:build integration

// Package pgtest starts a throwaway PostgreSQL container for integration tests
// and brings it to the current schema with the embedded migrations.
package pgtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/config"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the PostgreSQL image used by every integration test
const Image = "postgres:16-alpine"

// Container is a running PostgreSQL instance
type Container struct {
	DSN    string
	SqlDB  *sql.DB
	Config config.DatabaseConfig
}

// Start runs a fresh container and registers its cleanup on t
func Start(t *testing.T) *Container {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		Image,
		tcpostgres.WithDatabase("clusterweb_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, sqlDB.PingContext(ctx))

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return &Container{
		DSN:   dsn,
		SqlDB: sqlDB,
		Config: config.DatabaseConfig{
			Driver:       config.DriverPostgres,
			Host:         host,
			Port:         port.Int(),
			User:         "postgres",
			Password:     "postgres",
			DBName:       "clusterweb_test",
			SSLMode:      "disable",
			MaxOpenConns: 5,
			MaxIdleConns: 2,
		},
	}
}
