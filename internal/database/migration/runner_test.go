package migration

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdersAndChecksums(t *testing.T) {
	src := fstest.MapFS{
		"V2__add_index.sql":   {Data: []byte("CREATE INDEX x ON t(a);\n")},
		"V1__init.sql":        {Data: []byte("CREATE TABLE t (a INT);")},
		"README.md":           {Data: []byte("ignored")},
		"V3__broken_name.txt": {Data: []byte("ignored")},
	}
	migs, err := loadMigrations(src)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Len(t, migs[0].Checksum, 64)
	assert.NotEqual(t, migs[0].Checksum, migs[1].Checksum)
}

func TestLoadMigrations_Rejects(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestRunner_EmbeddedSchema(t *testing.T) {
	migs, err := Runner{}.Load()
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS challenge_attempts")
}

func TestStatuses_MarksApplied(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	migs := []Migration{{Version: 1, Name: "init"}, {Version: 2, Name: "attempt_index"}}

	out := statuses(migs, map[int64]appliedMigration{1: {Checksum: "abc", AppliedAt: at}})

	require.Len(t, out, 2)
	assert.True(t, out[0].Applied)
	assert.Equal(t, at, out[0].AppliedAt)
	assert.False(t, out[1].Applied)
	assert.True(t, out[1].AppliedAt.IsZero())
}

func TestRunner_NilDB(t *testing.T) {
	assert.Error(t, Runner{}.Run(context.Background(), nil))
	_, err := Runner{}.Status(context.Background(), nil)
	assert.Error(t, err)
}
