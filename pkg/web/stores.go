package web

import (
	"log/slog"
	"sync"

	"github.com/flowdeck/flowdeck/pkg/auth"
	"github.com/flowdeck/flowdeck/pkg/eventbus"
	"github.com/flowdeck/flowdeck/pkg/persistence"
	"github.com/flowdeck/flowdeck/pkg/store"
)

// SessionStores hands out one collection store per user. Stores are created
// lazily on first use and live for the lifetime of the process.
type SessionStores struct {
	mu     sync.Mutex
	repo   persistence.WorkflowRepository
	bus    eventbus.EventBus
	logger *slog.Logger
	stores map[string]*store.Store
}

func NewSessionStores(repo persistence.WorkflowRepository, bus eventbus.EventBus, logger *slog.Logger) *SessionStores {
	return &SessionStores{
		repo:   repo,
		bus:    bus,
		logger: logger,
		stores: make(map[string]*store.Store),
	}
}

// For returns the store scoped to the session's user.
func (s *SessionStores) For(sess *auth.Session) *store.Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.stores[sess.UserID]; ok {
		return existing
	}

	created := store.NewStore(s.repo, s.bus, s.logger)
	s.stores[sess.UserID] = created

	return created
}
