package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arathel/wardtable/internal/campaign/combat"
	"github.com/arathel/wardtable/internal/campaign/policy"
	"github.com/arathel/wardtable/internal/event"
	"github.com/arathel/wardtable/internal/storage"
)

// StartCombat starts (or restarts) combat with the given initiative
// order. Owner or DM only.
func (s *Service) StartCombat(ctx context.Context, principalID, campaignID string, initiativeOrder []string) (combat.State, error) {
	return s.transitionCombat(ctx, principalID, campaignID, "started", func(prior combat.State, now func() time.Time) (combat.State, error) {
		return combat.Start(prior, initiativeOrder, now)
	})
}

// AdvanceTurn moves to the next combatant, wrapping into a new round at
// the end of the order. Owner or DM only.
func (s *Service) AdvanceTurn(ctx context.Context, principalID, campaignID string) (combat.State, error) {
	return s.transitionCombat(ctx, principalID, campaignID, "advanced", combat.AdvanceTurn)
}

// EndCombat deactivates combat, keeping the final counters as a record.
// Owner or DM only.
func (s *Service) EndCombat(ctx context.Context, principalID, campaignID string) (combat.State, error) {
	return s.transitionCombat(ctx, principalID, campaignID, "ended", combat.End)
}

// UpdateEnemyRoster replaces the enemy roster of an active combat.
// Owner or DM only.
func (s *Service) UpdateEnemyRoster(ctx context.Context, principalID, campaignID string, enemies []combat.Enemy) (combat.State, error) {
	return s.transitionCombat(ctx, principalID, campaignID, "roster", func(prior combat.State, now func() time.Time) (combat.State, error) {
		return combat.SetEnemies(prior, enemies, now)
	})
}

// GetCombatState returns the campaign's combat singleton. Campaigns that
// never started combat report the idle state.
func (s *Service) GetCombatState(ctx context.Context, principalID, campaignID string) (combat.State, error) {
	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
	if err != nil {
		return combat.State{}, err
	}
	return s.loadCombat(ctx, c.ID)
}

// transitionCombat runs one combat transition under the campaign lock:
// authorize, load, apply, compare-and-set. The CAS loses when another
// writer moved the counters between load and swap, which reports as a
// stale turn even though the lock already serializes in-process callers.
func (s *Service) transitionCombat(ctx context.Context, principalID, campaignID, action string, apply func(combat.State, func() time.Time) (combat.State, error)) (combat.State, error) {
	unlock := s.locks.lock(strings.TrimSpace(campaignID))
	defer unlock()

	c, err := s.authz.DecideAny(ctx, principalID, campaignID, policy.CapabilityOwner, policy.CapabilityDM)
	if err != nil {
		return combat.State{}, err
	}

	prior, err := s.loadCombat(ctx, c.ID)
	if err != nil {
		return combat.State{}, err
	}

	next, err := apply(prior, s.clock)
	if err != nil {
		return combat.State{}, err
	}

	if err := s.stores.Combat.SwapCombatState(ctx, prior, next); err != nil {
		if errors.Is(err, storage.ErrStaleState) {
			return combat.State{}, combat.ErrStaleTurn
		}
		return combat.State{}, err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitCombatChanged(ctx, c.ID, strings.TrimSpace(principalID), map[string]any{
			"action":     action,
			"round":      next.Round,
			"turn_index": next.TurnIndex,
			"is_active":  next.IsActive,
		})
	})
	return next, nil
}

// loadCombat reads the combat singleton, mapping an absent row to the
// idle state so first starts work without a creation step.
func (s *Service) loadCombat(ctx context.Context, campaignID string) (combat.State, error) {
	state, err := s.stores.Combat.GetCombatState(ctx, campaignID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return combat.Idle(campaignID), nil
		}
		return combat.State{}, err
	}
	return state, nil
}
