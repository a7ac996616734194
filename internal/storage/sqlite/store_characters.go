package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/arathel/wardtable/internal/campaign/character"
	"github.com/arathel/wardtable/internal/storage"
)

const characterColumns = "id, campaign_id, user_id, name, hp, xp, position, status_effects, created_at, updated_at"

// PutCharacter inserts or replaces a character record.
func (s *Store) PutCharacter(ctx context.Context, ch character.Character) error {
	effects, err := json.Marshal(ch.StatusEffects)
	if err != nil {
		return fmt.Errorf("marshal status effects: %w", err)
	}
	if ch.StatusEffects == nil {
		effects = []byte("[]")
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO characters (`+characterColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(campaign_id, id) DO UPDATE SET
	name = excluded.name,
	hp = excluded.hp,
	xp = excluded.xp,
	position = excluded.position,
	status_effects = excluded.status_effects,
	updated_at = excluded.updated_at
`,
		ch.ID,
		ch.CampaignID,
		ch.UserID,
		ch.Name,
		ch.Hp,
		ch.Xp,
		ch.Position,
		string(effects),
		toMillis(ch.CreatedAt),
		toMillis(ch.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter returns a character scoped to its campaign.
func (s *Store) GetCharacter(ctx context.Context, campaignID, characterID string) (character.Character, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+characterColumns+" FROM characters WHERE campaign_id = ? AND id = ?",
		campaignID, characterID)
	return scanCharacter(row)
}

// ListCharacters returns every character in a campaign, oldest first.
func (s *Store) ListCharacters(ctx context.Context, campaignID string) ([]character.Character, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+characterColumns+" FROM characters WHERE campaign_id = ? ORDER BY created_at ASC, id ASC",
		campaignID)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	var out []character.Character
	for rows.Next() {
		ch, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

// DeleteCharacter removes a character record.
func (s *Store) DeleteCharacter(ctx context.Context, campaignID, characterID string) error {
	res, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM characters WHERE campaign_id = ? AND id = ?", campaignID, characterID)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete character rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCharacter(row rowScanner) (character.Character, error) {
	var ch character.Character
	var effects string
	var createdAt, updatedAt int64
	err := row.Scan(
		&ch.ID,
		&ch.CampaignID,
		&ch.UserID,
		&ch.Name,
		&ch.Hp,
		&ch.Xp,
		&ch.Position,
		&effects,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return character.Character{}, storage.ErrNotFound
		}
		return character.Character{}, fmt.Errorf("scan character: %w", err)
	}

	if effects != "" && effects != "[]" {
		if err := json.Unmarshal([]byte(effects), &ch.StatusEffects); err != nil {
			return character.Character{}, fmt.Errorf("unmarshal status effects: %w", err)
		}
	}
	ch.CreatedAt = fromMillis(createdAt)
	ch.UpdatedAt = fromMillis(updatedAt)
	return ch, nil
}
