package sqlite

import (
	"context"
	"fmt"

	"github.com/arathel/wardtable/internal/event"
)

// Emit journals a change event. The journal is at-least-once: replayed
// events overwrite themselves by id.
func (s *Store) Emit(ctx context.Context, evt event.Event) error {
	payload := string(evt.PayloadJSON)
	if payload == "" {
		payload = "{}"
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT OR REPLACE INTO change_events (id, campaign_id, event_type, actor_id, entity_type, entity_id, payload_json, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		evt.ID,
		evt.CampaignID,
		string(evt.Type),
		evt.ActorID,
		evt.EntityType,
		evt.EntityID,
		payload,
		toMillis(evt.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("journal change event: %w", err)
	}
	return nil
}

// ListChangeEvents returns a campaign's journaled events oldest first,
// up to limit (0 means no limit).
func (s *Store) ListChangeEvents(ctx context.Context, campaignID string, limit int) ([]event.Event, error) {
	query := `
SELECT id, campaign_id, event_type, actor_id, entity_type, entity_id, payload_json, created_at
FROM change_events
WHERE campaign_id = ?
ORDER BY created_at ASC, id ASC
`
	args := []any{campaignID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list change events: %w", err)
	}
	defer rows.Close()

	var out []event.Event
	for rows.Next() {
		var evt event.Event
		var eventType, payload string
		var createdAt int64
		if err := rows.Scan(
			&evt.ID,
			&evt.CampaignID,
			&eventType,
			&evt.ActorID,
			&evt.EntityType,
			&evt.EntityID,
			&payload,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan change event: %w", err)
		}
		evt.Type = event.Type(eventType)
		evt.PayloadJSON = []byte(payload)
		evt.Timestamp = fromMillis(createdAt)
		out = append(out, evt)
	}
	return out, rows.Err()
}

var _ event.Sink = (*Store)(nil)
