package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStorage runs the contract every backend must satisfy.
func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "notes", `[{"text":"a"}]`))
	val, ok, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"text":"a"}]`, val)

	require.NoError(t, s.Set(ctx, "notes", `[]`))
	val, _, err = s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, val)

	assert.ErrorIs(t, s.Set(ctx, "../escape", "{}"), ErrInvalidKey)
	_, _, err = s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	exerciseStorage(t, s)

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "notes.json", entries[0].Name())
}

func TestFileStorageSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewFileStorage(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "chatSessions", `{"x":1}`))

	s2, err := NewFileStorage(dir)
	require.NoError(t, err)
	val, ok, err := s2.Get(ctx, "chatSessions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, val)
}

func TestBoltStorage(t *testing.T) {
	s, err := NewBoltStorage(filepath.Join(t.TempDir(), "brain.db"))
	require.NoError(t, err)
	defer s.Close()
	exerciseStorage(t, s)
}

func TestRedisStorage(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	s, err := NewRedisStorage(context.Background(), url, "brain-test:"+t.Name()+":")
	require.NoError(t, err)
	defer s.Close()
	defer s.rdb.Del(context.Background(), s.prefix+"notes")
	exerciseStorage(t, s)
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, driver := range []string{"", DriverMemory, DriverFile, DriverBolt} {
		t.Run("driver="+driver, func(t *testing.T) {
			s, closer, err := Open(ctx, Options{Driver: driver, Dir: filepath.Join(dir, "d"+driver)})
			require.NoError(t, err)
			defer closer.Close()
			assert.NotNil(t, s)
		})
	}

	_, _, err := Open(ctx, Options{Driver: "floppy"})
	assert.Error(t, err)

	_, _, err = Open(ctx, Options{Driver: DriverPostgres})
	assert.Error(t, err)
}
