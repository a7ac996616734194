// Package event provides change notification for successful mutations.
//
// The core only needs to emit a change event per successful mutation;
// delivery ordering is not guaranteed and downstream consumers reconcile
// on conflicting updates.
package event

import (
	"context"
	"time"
)

// Type identifies the kind of change an event describes.
type Type string

const (
	// TypeCampaignChanged covers campaign create/update/delete.
	TypeCampaignChanged Type = "campaign.changed"
	// TypeMembershipChanged covers joins and leaves.
	TypeMembershipChanged Type = "membership.changed"
	// TypeCharacterChanged covers character create/patch/delete.
	TypeCharacterChanged Type = "character.changed"
	// TypeCombatChanged covers combat state transitions.
	TypeCombatChanged Type = "combat.changed"
	// TypeUserRegistered is emitted by the post-registration hook.
	TypeUserRegistered Type = "user.registered"
)

// Event is the change notification envelope.
type Event struct {
	ID          string
	CampaignID  string
	Type        Type
	ActorID     string
	EntityType  string
	EntityID    string
	PayloadJSON []byte
	Timestamp   time.Time
}

// Sink receives change events. Implementations must treat delivery as
// at-least-once and must not be relied on for consistency.
type Sink interface {
	Emit(ctx context.Context, evt Event) error
}

// NopSink discards every event.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(context.Context, Event) error { return nil }
