// Package usage aggregates chat exchanges per persona.
package usage

import (
	"sync"
	"time"

	"ai-brain-be/internal/dto"
)

type personaUsage struct {
	personaName   string
	exchanges     int
	errors        int
	interceptions int
	last          time.Time
}

// Tracker counts exchanges in memory. Counts reset on restart.
type Tracker struct {
	mu        sync.RWMutex
	order     []string
	byPersona map[string]*personaUsage
}

func NewTracker() *Tracker {
	return &Tracker{byPersona: make(map[string]*personaUsage)}
}

func (t *Tracker) Record(msg dto.ChatExchangeMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u, ok := t.byPersona[msg.PersonaId]
	if !ok {
		u = &personaUsage{}
		t.byPersona[msg.PersonaId] = u
		t.order = append(t.order, msg.PersonaId)
	}
	if msg.PersonaName != "" {
		u.personaName = msg.PersonaName
	}

	u.exchanges++
	switch msg.Outcome {
	case dto.ExchangeOutcomeError:
		u.errors++
	case dto.ExchangeOutcomeIntercepted:
		u.interceptions++
	}
	if msg.OccurredAt.After(u.last) {
		u.last = msg.OccurredAt
	}
}

// Snapshot returns usage in first-seen order.
func (t *Tracker) Snapshot() []*dto.PersonaUsageResponse {
	t.mu.RLock()
	defer t.mu.RUnlock()

	res := make([]*dto.PersonaUsageResponse, 0, len(t.order))
	for _, id := range t.order {
		u := t.byPersona[id]
		item := &dto.PersonaUsageResponse{
			PersonaId:     id,
			PersonaName:   u.personaName,
			Exchanges:     u.exchanges,
			Errors:        u.errors,
			Interceptions: u.interceptions,
		}
		if !u.last.IsZero() {
			last := u.last
			item.LastExchange = &last
		}
		res = append(res, item)
	}
	return res
}
