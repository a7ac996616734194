// Package service is the resource guard layer: every read and mutation of
// campaign-scoped state enters through here, and every operation asks the
// authorization engine for a decision before touching a store.
//
// Mutations on one campaign serialize through a per-campaign lock so the
// capability check and the write happen in the same critical section;
// membership revoked between check and write cannot be missed. Reads only
// take store-level consistency.
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/arathel/wardtable/internal/campaign/invite"
	"github.com/arathel/wardtable/internal/campaign/policy"
	"github.com/arathel/wardtable/internal/event"
	"github.com/arathel/wardtable/internal/id"
	"github.com/arathel/wardtable/internal/storage"
)

// Stores groups the storage interfaces the guard layer operates on.
type Stores struct {
	Campaign   storage.CampaignStore
	Membership storage.MembershipStore
	Character  storage.CharacterStore
	Combat     storage.CombatStore
}

// Service guards campaign-scoped resources and sequences combat state.
type Service struct {
	stores      Stores
	authz       *policy.Engine
	resolver    *invite.Resolver
	emitter     *event.Emitter
	joinGrants  invite.JoinGrantConfig
	clock       func() time.Time
	idGenerator func() (string, error)
	locks       campaignLocks
}

// Option configures optional service behavior.
type Option func(*Service)

// WithJoinGrants enables signed join-grant verification for joins.
func WithJoinGrants(cfg invite.JoinGrantConfig) Option {
	return func(s *Service) {
		s.joinGrants = cfg
	}
}

// New creates a Service with default dependencies.
func New(stores Stores, emitter *event.Emitter, opts ...Option) *Service {
	s := &Service{
		stores:      stores,
		authz:       policy.NewEngine(stores.Campaign, stores.Membership),
		resolver:    invite.NewResolver(stores.Campaign),
		emitter:     emitter,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// campaignLocks serializes mutations per campaign id.
type campaignLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the mutation lock for a campaign and returns its release.
func (l *campaignLocks) lock(campaignID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[campaignID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[campaignID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// emit forwards a change event, logging failures instead of propagating
// them: notification is fire-and-forget and never rolls back a mutation.
func (s *Service) emit(ctx context.Context, send func(ctx context.Context) (event.Event, error)) {
	if s.emitter == nil {
		return
	}
	if _, err := send(ctx); err != nil {
		log.Printf("change event dropped error=%v", err)
	}
}
