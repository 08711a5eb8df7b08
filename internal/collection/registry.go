package collection

import (
	"context"
	"sync"
	"time"

	"quicknote-be/internal/pkg/logger"
	"quicknote-be/internal/service"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Registry hands out the live Manager for each active session. Managers
// expire with the session TTL; revoking a session drops its collection.
type Registry struct {
	mu    sync.Mutex
	cache *cache.Cache

	store      service.INoteService
	summarizer service.ISummaryService
	log        logger.ILogger
}

func NewRegistry(
	store service.INoteService,
	summarizer service.ISummaryService,
	log logger.ILogger,
) *Registry {
	// Managers live for an hour of inactivity, purged every 10 minutes,
	// matching the access token lifetime order of magnitude.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &Registry{
		cache:      c,
		store:      store,
		summarizer: summarizer,
		log:        log,
	}
}

// Acquire returns the manager bound to the user, creating and populating it
// on first access. A failed initial fetch is evicted, so the next request
// retries the population.
func (r *Registry) Acquire(ctx context.Context, userId uuid.UUID) (*Manager, error) {
	key := userId.String()

	r.mu.Lock()
	var mgr *Manager
	if x, found := r.cache.Get(key); found {
		mgr = x.(*Manager)
	} else {
		mgr = NewManager(userId, r.store, r.summarizer, r.log)
		r.cache.Set(key, mgr, cache.DefaultExpiration)
	}
	r.mu.Unlock()

	// The fetch runs outside the registry lock so one user's slow initial
	// population does not stall every other session.
	if err := mgr.ensureLoaded(ctx); err != nil {
		r.mu.Lock()
		if x, found := r.cache.Get(key); found && x.(*Manager) == mgr {
			r.cache.Delete(key)
		}
		r.mu.Unlock()
		return nil, err
	}
	return mgr, nil
}

// Revoke ends the user's session binding; the in-memory collection is
// dropped with it.
func (r *Registry) Revoke(userId uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(userId.String())
}
