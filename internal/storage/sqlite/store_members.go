package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arathel/wardtable/internal/campaign/member"
	"github.com/arathel/wardtable/internal/storage"
)

// PutMembership inserts a membership row. A duplicate (campaign, user)
// pair reports ErrAlreadyExists.
func (s *Store) PutMembership(ctx context.Context, m member.Membership) error {
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO memberships (campaign_id, user_id, is_dm, joined_at)
VALUES (?, ?, ?, ?)
`,
		m.CampaignID,
		m.UserID,
		boolToInt(m.IsDM),
		toMillis(m.JoinedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put membership: %w", err)
	}
	return nil
}

// GetMembership returns the membership row for a (campaign, user) pair.
func (s *Store) GetMembership(ctx context.Context, campaignID, userID string) (member.Membership, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT campaign_id, user_id, is_dm, joined_at
FROM memberships
WHERE campaign_id = ? AND user_id = ?
`, campaignID, userID)
	return scanMembership(row)
}

// ListMemberships returns every membership row in a campaign, earliest
// join first.
func (s *Store) ListMemberships(ctx context.Context, campaignID string) ([]member.Membership, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT campaign_id, user_id, is_dm, joined_at
FROM memberships
WHERE campaign_id = ?
ORDER BY joined_at ASC, user_id ASC
`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var out []member.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMembership removes a membership row.
func (s *Store) DeleteMembership(ctx context.Context, campaignID, userID string) error {
	res, err := s.sqlDB.ExecContext(ctx,
		"DELETE FROM memberships WHERE campaign_id = ? AND user_id = ?", campaignID, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete membership rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanMembership(row rowScanner) (member.Membership, error) {
	var m member.Membership
	var isDM int
	var joinedAt int64
	err := row.Scan(&m.CampaignID, &m.UserID, &isDM, &joinedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return member.Membership{}, storage.ErrNotFound
		}
		return member.Membership{}, fmt.Errorf("scan membership: %w", err)
	}
	m.IsDM = isDM != 0
	m.JoinedAt = fromMillis(joinedAt)
	return m, nil
}
