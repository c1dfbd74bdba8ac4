package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"ai-brain-be/internal/constant"
	"ai-brain-be/internal/entity"
	"ai-brain-be/internal/pkg/logger"
	"ai-brain-be/pkg/kvstore"
	"ai-brain-be/pkg/persona"

	"github.com/google/uuid"
)

const sessionModule = "session_repository"

// SessionRepository holds every chat session, newest first, and tracks which
// one is current. While the store is non-empty exactly one session is current;
// when it is empty there is no current id at all.
type SessionRepository struct {
	mu        sync.RWMutex
	storage   kvstore.Storage
	personas  *persona.Registry
	logger    logger.ILogger
	now       func() time.Time
	newId     func() (string, error)
	sessions  map[string]*entity.ChatSession
	order     []string
	currentId string
}

func NewSessionRepository(storage kvstore.Storage, personas *persona.Registry, log logger.ILogger) *SessionRepository {
	return &SessionRepository{
		storage:  storage,
		personas: personas,
		logger:   log,
		now:      time.Now,
		newId:    newTimeOrderedId,
		sessions: make(map[string]*entity.ChatSession),
	}
}

// UUIDv7 ids sort lexicographically in creation order.
func newTimeOrderedId() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func EncodeSessions(sessions map[string]*entity.ChatSession) (string, error) {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func DecodeSessions(raw string) (map[string]*entity.ChatSession, error) {
	var sessions map[string]*entity.ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, err
	}
	for id, s := range sessions {
		if s == nil {
			return nil, fmt.Errorf("session %s is null", id)
		}
		if s.Id == "" {
			s.Id = id
		}
		if s.Id != id {
			return nil, fmt.Errorf("session key %s does not match id %s", id, s.Id)
		}
		if s.Messages == nil {
			s.Messages = []entity.ChatMessage{}
		}
	}
	return sessions, nil
}

// Load restores the persisted sessions and selects the most recently created
// one as current. Corrupt data is discarded. An empty store gets a fresh
// default session.
func (r *SessionRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reset()
	raw, ok, err := r.storage.Get(ctx, constant.StorageKeySessions)
	switch {
	case err != nil:
		r.logger.Warn(sessionModule, "Failed to read sessions, starting empty", map[string]interface{}{"error": err.Error()})
	case ok:
		sessions, err := DecodeSessions(raw)
		if err != nil {
			r.logger.Warn(sessionModule, "Corrupt sessions payload, resetting", map[string]interface{}{"error": err.Error()})
			break
		}
		r.sessions = sessions
		for id := range sessions {
			r.order = append(r.order, id)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(r.order)))
	}

	if len(r.order) > 0 {
		r.currentId = r.order[0]
		return nil
	}
	_, err = r.create(ctx, constant.DefaultPersonaId)
	return err
}

// Create starts a session bound to personaId (unknown ids fall back to the
// default persona), seeds the init message and makes it current.
func (r *SessionRepository) Create(ctx context.Context, personaId string) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.create(ctx, personaId)
}

func (r *SessionRepository) create(ctx context.Context, personaId string) (*entity.ChatSession, error) {
	p := r.personas.Lookup(personaId)

	id, err := r.uniqueId()
	if err != nil {
		return nil, err
	}

	session := &entity.ChatSession{
		Id:        id,
		Title:     r.titleFor(p),
		PersonaId: p.Id,
		Messages: []entity.ChatMessage{{
			Role:        entity.RoleAssistant,
			Content:     fmt.Sprintf(constant.SessionInitMessageFormat, p.DisplayName),
			PersonaName: p.DisplayName,
		}},
	}

	r.sessions[id] = session
	r.order = append([]string{id}, r.order...)
	r.currentId = id

	return session.Clone(), r.persist(ctx)
}

func (r *SessionRepository) uniqueId() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		id, err := r.newId()
		if err != nil {
			return "", fmt.Errorf("generate session id: %w", err)
		}
		if _, exists := r.sessions[id]; !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate session id: repeated collisions")
}

func (r *SessionRepository) titleFor(p entity.Persona) string {
	if p.Id == r.personas.Default().Id {
		count := 0
		for _, s := range r.sessions {
			if s.PersonaId == p.Id {
				count++
			}
		}
		return fmt.Sprintf(constant.DefaultSessionTitle, count+1)
	}
	return fmt.Sprintf("%s · %s", p.DisplayName, r.now().Format(constant.SessionTitleTimeLayout))
}

func (r *SessionRepository) SetCurrent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return &entity.NotFoundError{Resource: "session", Id: id}
	}
	r.currentId = id
	return nil
}

func (r *SessionRepository) Current() (*entity.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.currentId == "" {
		return nil, entity.ErrNoCurrentSession
	}
	return r.sessions[r.currentId].Clone(), nil
}

func (r *SessionRepository) Get(id string) (*entity.ChatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, &entity.NotFoundError{Resource: "session", Id: id}
	}
	return s.Clone(), nil
}

// List returns copies of all sessions, most recently created first.
func (r *SessionRepository) List() []*entity.ChatSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.ChatSession, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sessions[id].Clone())
	}
	return out
}

func (r *SessionRepository) AppendMessage(ctx context.Context, sessionId string, msg entity.ChatMessage) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("invalid message role %q", msg.Role)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionId]
	if !ok {
		return &entity.NotFoundError{Resource: "session", Id: sessionId}
	}
	s.Messages = append(s.Messages, msg)
	return r.persist(ctx)
}

// Delete removes one session. If it was current, the newest remaining session
// takes over.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return &entity.NotFoundError{Resource: "session", Id: id}
	}
	delete(r.sessions, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	if r.currentId == id {
		r.currentId = ""
		if len(r.order) > 0 {
			r.currentId = r.order[0]
		}
	}
	return r.persist(ctx)
}

// DeleteAll empties the store and clears the current pointer. Callers create
// a new session before the next interaction.
func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reset()
	return r.persist(ctx)
}

func (r *SessionRepository) reset() {
	r.sessions = make(map[string]*entity.ChatSession)
	r.order = nil
	r.currentId = ""
}

// persist must be called with r.mu held.
func (r *SessionRepository) persist(ctx context.Context) error {
	raw, err := EncodeSessions(r.sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := r.storage.Set(ctx, constant.StorageKeySessions, raw); err != nil {
		r.logger.Error(sessionModule, "Failed to persist sessions", map[string]interface{}{"error": err})
		return fmt.Errorf("persist sessions: %w", err)
	}
	return nil
}
