package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/arathel/wardtable/internal/campaign/combat"
	"github.com/arathel/wardtable/internal/storage"
)

// GetCombatState returns the combat singleton for a campaign.
func (s *Store) GetCombatState(ctx context.Context, campaignID string) (combat.State, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT campaign_id, is_active, round, turn_index, initiative_order, enemies, updated_at
FROM combat_states
WHERE campaign_id = ?
`, campaignID)
	return scanCombatState(row)
}

// SwapCombatState persists next only while the stored counters still match
// prior's (is_active, round, turn_index). An absent row matches the idle
// zero state, which covers lazy creation on first combat start.
func (s *Store) SwapCombatState(ctx context.Context, prior, next combat.State) error {
	order, err := json.Marshal(next.InitiativeOrder)
	if err != nil {
		return fmt.Errorf("marshal initiative order: %w", err)
	}
	enemies, err := json.Marshal(next.Enemies)
	if err != nil {
		return fmt.Errorf("marshal enemies: %w", err)
	}
	if next.InitiativeOrder == nil {
		order = []byte("[]")
	}
	if next.Enemies == nil {
		enemies = []byte("[]")
	}

	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE combat_states SET
	is_active = ?,
	round = ?,
	turn_index = ?,
	initiative_order = ?,
	enemies = ?,
	updated_at = ?
WHERE campaign_id = ? AND is_active = ? AND round = ? AND turn_index = ?
`,
		boolToInt(next.IsActive),
		next.Round,
		next.TurnIndex,
		string(order),
		string(enemies),
		toMillis(next.UpdatedAt),
		next.CampaignID,
		boolToInt(prior.IsActive),
		prior.Round,
		prior.TurnIndex,
	)
	if err != nil {
		return fmt.Errorf("swap combat state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("swap combat state rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// No row updated: either the counters moved, or the singleton does not
	// exist yet. Only an idle prior may create it.
	if prior.IsActive || prior.Round != 0 || prior.TurnIndex != 0 {
		return storage.ErrStaleState
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO combat_states (campaign_id, is_active, round, turn_index, initiative_order, enemies, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`,
		next.CampaignID,
		boolToInt(next.IsActive),
		next.Round,
		next.TurnIndex,
		string(order),
		string(enemies),
		toMillis(next.UpdatedAt),
	)
	if err != nil {
		// A concurrent writer created the row after our failed update.
		if isUniqueViolation(err) {
			return storage.ErrStaleState
		}
		return fmt.Errorf("insert combat state: %w", err)
	}
	return nil
}

func scanCombatState(row rowScanner) (combat.State, error) {
	var state combat.State
	var isActive int
	var order, enemies string
	var updatedAt int64
	err := row.Scan(
		&state.CampaignID,
		&isActive,
		&state.Round,
		&state.TurnIndex,
		&order,
		&enemies,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return combat.State{}, storage.ErrNotFound
		}
		return combat.State{}, fmt.Errorf("scan combat state: %w", err)
	}

	state.IsActive = isActive != 0
	if order != "" && order != "[]" {
		if err := json.Unmarshal([]byte(order), &state.InitiativeOrder); err != nil {
			return combat.State{}, fmt.Errorf("unmarshal initiative order: %w", err)
		}
	}
	if enemies != "" && enemies != "[]" {
		if err := json.Unmarshal([]byte(enemies), &state.Enemies); err != nil {
			return combat.State{}, fmt.Errorf("unmarshal enemies: %w", err)
		}
	}
	state.UpdatedAt = fromMillis(updatedAt)
	return state, nil
}
