package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/kvstore"
)

const noteModule = "note_repository"

// NoteRepository holds the captured notes in insertion order. Memory is
// authoritative; every mutation is mirrored to storage before returning.
type NoteRepository struct {
	mu      sync.RWMutex
	storage kvstore.Storage
	logger  logger.ILogger
	now     func() time.Time
	notes   []entity.Note
}

func NewNoteRepository(storage kvstore.Storage, log logger.ILogger) *NoteRepository {
	return &NoteRepository{
		storage: storage,
		logger:  log,
		now:     time.Now,
	}
}

type persistedNote struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

func EncodeNotes(notes []entity.Note) (string, error) {
	out := make([]persistedNote, len(notes))
	for i, n := range notes {
		out[i] = persistedNote{Text: n.Text, Date: n.CreatedAt}
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func DecodeNotes(raw string) ([]entity.Note, error) {
	var in []persistedNote
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	notes := make([]entity.Note, len(in))
	for i, n := range in {
		notes[i] = entity.Note{Text: n.Text, CreatedAt: n.Date}
	}
	return notes, nil
}

// Load replaces the in-memory notes with the persisted ones. Absent, unreadable
// or corrupt data leaves an empty store.
func (r *NoteRepository) Load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = nil
	raw, ok, err := r.storage.Get(ctx, constant.StorageKeyNotes)
	if err != nil {
		r.logger.Warn(noteModule, "Failed to read notes, starting empty", map[string]interface{}{"error": err.Error()})
		return
	}
	if !ok {
		return
	}
	notes, err := DecodeNotes(raw)
	if err != nil {
		r.logger.Warn(noteModule, "Corrupt notes payload, resetting", map[string]interface{}{"error": err.Error()})
		return
	}
	r.notes = notes
}

// Add appends a note. Text that is empty after trimming is ignored and
// reported with added=false.
func (r *NoteRepository) Add(ctx context.Context, text string) (note entity.Note, added bool, err error) {
	if strings.TrimSpace(text) == "" {
		return entity.Note{}, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	note = entity.Note{Text: text, CreatedAt: r.now().UTC().Round(0)}
	r.notes = append(r.notes, note)
	return note, true, r.persist(ctx)
}

// Remove deletes the note shown at displayIndex, where display order is
// newest first.
func (r *NoteRepository) Remove(ctx context.Context, displayIndex int) (entity.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if displayIndex < 0 || displayIndex >= len(r.notes) {
		return entity.Note{}, &entity.NotFoundError{Resource: "note", Id: strconv.Itoa(displayIndex)}
	}
	storageIndex := len(r.notes) - 1 - displayIndex
	removed := r.notes[storageIndex]

	notes := make([]entity.Note, 0, len(r.notes)-1)
	notes = append(notes, r.notes[:storageIndex]...)
	notes = append(notes, r.notes[storageIndex+1:]...)
	r.notes = notes

	return removed, r.persist(ctx)
}

// Clear empties the store. Without confirmation nothing changes.
func (r *NoteRepository) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return entity.ErrConfirmationRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = nil
	return r.persist(ctx)
}

// List returns the notes in display order (newest first).
func (r *NoteRepository) List() []entity.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Note, len(r.notes))
	for i, n := range r.notes {
		out[len(r.notes)-1-i] = n
	}
	return out
}

func (r *NoteRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notes)
}

// ContextText joins all note texts with newlines in insertion order.
func (r *NoteRepository) ContextText() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	texts := make([]string, len(r.notes))
	for i, n := range r.notes {
		texts[i] = n.Text
	}
	return strings.Join(texts, "\n")
}

// persist must be called with r.mu held.
func (r *NoteRepository) persist(ctx context.Context) error {
	raw, err := EncodeNotes(r.notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := r.storage.Set(ctx, constant.StorageKeyNotes, raw); err != nil {
		r.logger.Error(noteModule, "Failed to persist notes", map[string]interface{}{"error": err})
		return fmt.Errorf("persist notes: %w", err)
	}
	return nil
}
