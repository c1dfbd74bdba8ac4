package memory

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNoteRepository(t *testing.T) (*NoteRepository, kvstore.Storage) {
	t.Helper()
	storage := kvstore.NewMemoryStorage()
	repo := NewNoteRepository(storage, logger.NewNopLogger())
	base := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return repo, storage
}

func TestNoteAddAndContextText(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestNoteRepository(t)

	inputs := []string{"buy milk", "", "call mom", "   ", "\t\n", "buy milk"}
	want := []string{}
	for _, in := range inputs {
		_, added, err := repo.Add(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(in) != "", added)
		if added {
			want = append(want, in)
		}
	}

	assert.Equal(t, len(want), repo.Len())
	assert.Equal(t, strings.Join(want, "\n"), repo.ContextText())
}

func TestNoteAddBlankIsNoop(t *testing.T) {
	ctx := context.Background()
	repo, storage := newTestNoteRepository(t)

	_, _, err := repo.Add(ctx, "keep me")
	require.NoError(t, err)
	before, _, _ := storage.Get(ctx, constant.StorageKeyNotes)

	for _, blank := range []string{"", "   "} {
		_, added, err := repo.Add(ctx, blank)
		require.NoError(t, err)
		assert.False(t, added)
	}

	after, _, _ := storage.Get(ctx, constant.StorageKeyNotes)
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, "keep me", repo.ContextText())
	assert.Equal(t, before, after)
}

func TestNoteListIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestNoteRepository(t)

	for _, text := range []string{"first", "second", "third"} {
		_, _, err := repo.Add(ctx, text)
		require.NoError(t, err)
	}

	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Text)
	assert.Equal(t, "first", list[2].Text)
	assert.True(t, list[0].CreatedAt.After(list[2].CreatedAt))
}

func TestNoteRemoveTargetsDisplayedEntry(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestNoteRepository(t)

	// Duplicate text must not confuse deletion.
	for _, text := range []string{"dup", "other", "dup"} {
		_, _, err := repo.Add(ctx, text)
		require.NoError(t, err)
	}
	displayed := repo.List()

	removed, err := repo.Remove(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, displayed[2], removed)

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, displayed[0], list[0])
	assert.Equal(t, displayed[1], list[1])
	assert.Equal(t, "other\ndup", repo.ContextText())
}

func TestNoteRemoveOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestNoteRepository(t)
	_, _, err := repo.Add(ctx, "only")
	require.NoError(t, err)

	for _, idx := range []int{-1, 1, 42} {
		_, err := repo.Remove(ctx, idx)
		assert.ErrorIs(t, err, entity.ErrNotFound, "index %d", idx)
	}
	assert.Equal(t, 1, repo.Len())
}

// Removing display index i drops exactly the note rendered at i and keeps the
// relative order of every other note.
func TestNoteRemoveProperty(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		repo, _ := newTestNoteRepository(t)
		n := 1 + rng.Intn(12)
		for i := 0; i < n; i++ {
			// Small alphabet so duplicates are common.
			_, _, err := repo.Add(ctx, fmt.Sprintf("note-%d", rng.Intn(3)))
			require.NoError(t, err)
		}

		before := repo.List()
		idx := rng.Intn(n)

		removed, err := repo.Remove(ctx, idx)
		require.NoError(t, err)
		assert.Equal(t, before[idx], removed)

		want := append(append([]entity.Note{}, before[:idx]...), before[idx+1:]...)
		assert.Equal(t, want, repo.List(), "round %d, n=%d, idx=%d", round, n, idx)
	}
}

func TestNoteClearRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	repo, storage := newTestNoteRepository(t)
	_, _, err := repo.Add(ctx, "a")
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Clear(ctx, false), entity.ErrConfirmationRequired)
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Clear(ctx, true))
	assert.Equal(t, 0, repo.Len())
	assert.Equal(t, "", repo.ContextText())

	raw, ok, err := storage.Get(ctx, constant.StorageKeyNotes)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestNotePersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, storage := newTestNoteRepository(t)
	for _, text := range []string{"alpha", "beta", "  spaced  ", "alpha"} {
		_, _, err := repo.Add(ctx, text)
		require.NoError(t, err)
	}

	reloaded := NewNoteRepository(storage, logger.NewNopLogger())
	reloaded.Load(ctx)

	assert.Equal(t, repo.List(), reloaded.List())
	assert.Equal(t, repo.ContextText(), reloaded.ContextText())

	raw, err := EncodeNotes(repo.List())
	require.NoError(t, err)
	decoded, err := DecodeNotes(raw)
	require.NoError(t, err)
	assert.Equal(t, repo.List(), decoded)
}

func TestNoteLoadCorruptResetsToEmpty(t *testing.T) {
	ctx := context.Background()

	for _, payload := range []string{"{not json", `{"text":"object not array"}`, `[{"text":1}]`} {
		storage := kvstore.NewMemoryStorage()
		require.NoError(t, storage.Set(ctx, constant.StorageKeyNotes, payload))

		repo := NewNoteRepository(storage, logger.NewNopLogger())
		repo.Load(ctx)
		assert.Equal(t, 0, repo.Len(), "payload %q", payload)
	}
}

func TestNoteLoadAbsentKey(t *testing.T) {
	repo := NewNoteRepository(kvstore.NewMemoryStorage(), logger.NewNopLogger())
	repo.Load(context.Background())
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, repo.List())
}
