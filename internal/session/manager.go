package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Charliemorrone/FittedAI/internal/models"
	"github.com/Charliemorrone/FittedAI/internal/source"
)

// Manager owns the live swipe sessions, keyed by session id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	feed     Feed
	resolver *source.Resolver
}

// NewManager creates a session registry over the given feed and cascade.
func NewManager(feed Feed, resolver *source.Resolver) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		feed:     feed,
		resolver: resolver,
	}
}

// Create starts a new swipe session: it resolves the initial batch through
// the data-source cascade and transitions the session to Ready.
func (m *Manager) Create(ctx context.Context, prefs models.UserPreferences) (*Session, error) {
	s := New(uuid.NewString(), prefs, m.feed)

	tier, batch, err := m.resolver.Resolve(ctx, prefs)
	if err != nil {
		return nil, fmt.Errorf("resolve initial batch: %w", err)
	}
	s.Start(tier, batch)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s, nil
}

// Get looks up a live session.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops a session from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
