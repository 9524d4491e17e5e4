package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortsAndFilters(t *testing.T) {
	src := fstest.MapFS{
		"V2__add_indexes.sql":  {Data: []byte("CREATE INDEX a ON b (c);")},
		"V1__init_schema.sql":  {Data: []byte("  CREATE TABLE t (id int);\n")},
		"README.md":            {Data: []byte("not a migration")},
		"v3__lowercase.sql":    {Data: []byte("SELECT 1;")},
		"V10__later_thing.sql": {Data: []byte("SELECT 10;")},
	}

	migs, err := loadMigrations(src)
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init_schema", migs[0].Name)
	assert.Equal(t, "CREATE TABLE t (id int);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Equal(t, int64(10), migs[2].Version)
}

func TestLoadMigrations_RejectsDuplicatesAndEmptyFiles(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version")

	_, err = loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("   \n")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty migration file")
}

func TestLoadMigrations_ChecksumIgnoresSurroundingWhitespace(t *testing.T) {
	a, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("SELECT 1;")}})
	require.NoError(t, err)
	b, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("\n\nSELECT 1;\n")}})
	require.NoError(t, err)
	assert.Equal(t, a[0].Checksum, b[0].Checksum)
}

func TestRunner_LoadMissingDir(t *testing.T) {
	migs, err := Runner{Dir: t.TempDir() + "/nope"}.Load()
	require.NoError(t, err)
	assert.Empty(t, migs)
}
