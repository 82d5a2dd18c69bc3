//go:build integration

package migration

import (
	"testing"

	"github.com/EliwtFdez/ClusterWeb/internal/testutil/pgtest"
	"github.com/EliwtFdez/ClusterWeb/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func tableExists(t *testing.T, pg *pgtest.Container, name string) bool {
	t.Helper()
	var exists bool
	err := pg.SqlDB.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_tables WHERE schemaname = 'public' AND tablename = $1)`, name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func TestMigrator_UpDown(t *testing.T) {
	pg := pgtest.Start(t)

	m, err := NewFromFS(pg.SqlDB, migrations.FS, zaptest.NewLogger(t))
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	for _, table := range []string{"houses", "residents", "dues", "payments"} {
		assert.True(t, tableExists(t, pg, table), table)
	}

	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	// a second run is a no-op
	require.NoError(t, m.Up())

	require.NoError(t, m.Steps(-1))
	assert.False(t, tableExists(t, pg, "houses"))

	require.NoError(t, m.GoTo(1))
	assert.True(t, tableExists(t, pg, "houses"))

	require.NoError(t, m.Down())
	assert.False(t, tableExists(t, pg, "payments"))
}

func TestMigrator_FromDirectory(t *testing.T) {
	pg := pgtest.Start(t)

	m, err := New(pg.SqlDB, "../../../migrations", zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, m.Up())
	assert.True(t, tableExists(t, pg, "dues"))
}
