// Package combat owns the per-campaign combat state machine.
//
// Combat state is a one-per-campaign singleton: initiative order, round and
// turn counters, and the enemy roster. Transitions are pure functions so the
// storage layer can apply them inside a single transaction with a
// compare-and-set on the prior counters.
package combat

import (
	"strings"
	"time"

	apperrors "github.com/arathel/wardtable/internal/errors"
)

var (
	// ErrEmptyInitiative indicates a combat start without combatants.
	ErrEmptyInitiative = apperrors.New(apperrors.CodeCombatEmptyInitiative, "initiative order is required")
	// ErrNotActive indicates a transition that is only legal during active combat.
	ErrNotActive = apperrors.New(apperrors.CodeCombatNotActive, "combat is not active")
	// ErrStaleTurn indicates a concurrent advance already applied against the observed state.
	ErrStaleTurn = apperrors.New(apperrors.CodeCombatStaleTurn, "combat state changed concurrently")
)

// Enemy is a roster entry managed by the GM during active combat.
type Enemy struct {
	ID   string
	Name string
	Hp   int
}

// State is the combat singleton for a campaign.
//
// Round and TurnIndex are monotonic within a combat session and reset only
// when a new combat starts. IsActive false is the idle state; counters from
// the previous session are kept as a historical record.
type State struct {
	CampaignID      string
	IsActive        bool
	Round           int
	TurnIndex       int
	InitiativeOrder []string
	Enemies         []Enemy
	UpdatedAt       time.Time
}

// Idle returns the lazily-created idle combat state for a campaign.
func Idle(campaignID string) State {
	return State{CampaignID: campaignID}
}

// Start begins a combat session, replacing any previous roster and
// resetting round=1, turn=0. Legal from idle and from active combat
// (restarting replaces the initiative order entirely).
func Start(state State, initiativeOrder []string, now func() time.Time) (State, error) {
	if now == nil {
		now = time.Now
	}

	order := normalizeOrder(initiativeOrder)
	if len(order) == 0 {
		return State{}, ErrEmptyInitiative
	}

	updated := state
	updated.IsActive = true
	updated.Round = 1
	updated.TurnIndex = 0
	updated.InitiativeOrder = order
	updated.Enemies = nil
	updated.UpdatedAt = now().UTC()
	return updated, nil
}

// AdvanceTurn moves to the next combatant. Past the end of the initiative
// order it wraps to index 0 and increments the round.
func AdvanceTurn(state State, now func() time.Time) (State, error) {
	if now == nil {
		now = time.Now
	}
	if !state.IsActive {
		return State{}, ErrNotActive
	}

	updated := state
	updated.TurnIndex++
	if updated.TurnIndex > len(state.InitiativeOrder)-1 {
		updated.TurnIndex = 0
		updated.Round++
	}
	updated.UpdatedAt = now().UTC()
	return updated, nil
}

// End concludes the active session. Counters stay as a historical record
// until the next Start.
func End(state State, now func() time.Time) (State, error) {
	if now == nil {
		now = time.Now
	}
	if !state.IsActive {
		return State{}, ErrNotActive
	}

	updated := state
	updated.IsActive = false
	updated.UpdatedAt = now().UTC()
	return updated, nil
}

// SetEnemies replaces the enemy roster during active combat.
func SetEnemies(state State, enemies []Enemy, now func() time.Time) (State, error) {
	if now == nil {
		now = time.Now
	}
	if !state.IsActive {
		return State{}, ErrNotActive
	}

	updated := state
	updated.Enemies = make([]Enemy, len(enemies))
	copy(updated.Enemies, enemies)
	updated.UpdatedAt = now().UTC()
	return updated, nil
}

// normalizeOrder trims combatant ids and drops empties while keeping order.
func normalizeOrder(order []string) []string {
	normalized := make([]string, 0, len(order))
	for _, combatant := range order {
		combatant = strings.TrimSpace(combatant)
		if combatant == "" {
			continue
		}
		normalized = append(normalized, combatant)
	}
	return normalized
}
