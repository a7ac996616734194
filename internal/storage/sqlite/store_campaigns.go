package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/arathel/wardtable/internal/campaign"
	"github.com/arathel/wardtable/internal/storage"
)

const campaignColumns = "id, name, owner_id, is_active, invite_code, current_scene, game_state, created_at, updated_at"

// PutCampaign inserts or replaces a campaign record.
func (s *Store) PutCampaign(ctx context.Context, c campaign.Campaign) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("campaign id is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO campaigns (`+campaignColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	owner_id = excluded.owner_id,
	is_active = excluded.is_active,
	invite_code = excluded.invite_code,
	current_scene = excluded.current_scene,
	game_state = excluded.game_state,
	updated_at = excluded.updated_at
`,
		c.ID,
		c.Name,
		c.OwnerID,
		boolToInt(c.IsActive),
		c.InviteCode,
		c.CurrentScene,
		c.GameState,
		toMillis(c.CreatedAt),
		toMillis(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put campaign: %w", err)
	}
	return nil
}

// GetCampaign returns a campaign by id.
func (s *Store) GetCampaign(ctx context.Context, id string) (campaign.Campaign, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+campaignColumns+" FROM campaigns WHERE id = ?", id)
	return scanCampaign(row)
}

// GetCampaignByInviteCode resolves an invite code against active campaigns.
func (s *Store) GetCampaignByInviteCode(ctx context.Context, code string) (campaign.Campaign, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+campaignColumns+" FROM campaigns WHERE invite_code = ? AND is_active = 1", code)
	return scanCampaign(row)
}

// ListCampaignsForUser returns campaigns the user owns or belongs to,
// most recently created first.
func (s *Store) ListCampaignsForUser(ctx context.Context, userID string) ([]campaign.Campaign, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+campaignColumns+`
FROM campaigns
WHERE owner_id = ?1
   OR id IN (SELECT campaign_id FROM memberships WHERE user_id = ?1)
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []campaign.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteCampaign removes a campaign; foreign keys cascade to memberships,
// characters, and combat state.
func (s *Store) DeleteCampaign(ctx context.Context, id string) error {
	res, err := s.sqlDB.ExecContext(ctx, "DELETE FROM campaigns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete campaign rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (campaign.Campaign, error) {
	var c campaign.Campaign
	var isActive int
	var createdAt, updatedAt int64
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.OwnerID,
		&isActive,
		&c.InviteCode,
		&c.CurrentScene,
		&c.GameState,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return campaign.Campaign{}, storage.ErrNotFound
		}
		return campaign.Campaign{}, fmt.Errorf("scan campaign: %w", err)
	}
	c.IsActive = isActive != 0
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
