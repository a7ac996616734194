package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arathel/wardtable/internal/id"
)

// Emitter builds change envelopes and forwards them to a sink.
type Emitter struct {
	sink        Sink
	now         func() time.Time
	idGenerator func() (string, error)
}

// NewEmitter creates an emitter for the given sink.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{
		sink:        sink,
		now:         time.Now,
		idGenerator: id.NewID,
	}
}

// EmitInput describes the input for emitting an event.
type EmitInput struct {
	CampaignID string
	Type       Type
	ActorID    string
	EntityType string
	EntityID   string
	Payload    any
}

// Emit forwards a change event to the sink.
func (e *Emitter) Emit(ctx context.Context, input EmitInput) (Event, error) {
	if e == nil || e.sink == nil {
		return Event{}, fmt.Errorf("event sink is not configured")
	}

	payloadJSON, err := json.Marshal(input.Payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event payload: %w", err)
	}

	eventID, err := e.idGenerator()
	if err != nil {
		return Event{}, fmt.Errorf("generate event id: %w", err)
	}

	evt := Event{
		ID:          eventID,
		CampaignID:  input.CampaignID,
		Type:        input.Type,
		ActorID:     input.ActorID,
		EntityType:  input.EntityType,
		EntityID:    input.EntityID,
		PayloadJSON: payloadJSON,
		Timestamp:   e.now().UTC(),
	}

	if err := e.sink.Emit(ctx, evt); err != nil {
		return Event{}, fmt.Errorf("emit event: %w", err)
	}
	return evt, nil
}

// EmitCampaignChanged emits a campaign.changed event.
func (e *Emitter) EmitCampaignChanged(ctx context.Context, campaignID, actorID string, payload any) (Event, error) {
	return e.Emit(ctx, EmitInput{
		CampaignID: campaignID,
		Type:       TypeCampaignChanged,
		ActorID:    actorID,
		EntityType: "campaign",
		EntityID:   campaignID,
		Payload:    payload,
	})
}

// EmitMembershipChanged emits a membership.changed event.
func (e *Emitter) EmitMembershipChanged(ctx context.Context, campaignID, userID string, payload any) (Event, error) {
	return e.Emit(ctx, EmitInput{
		CampaignID: campaignID,
		Type:       TypeMembershipChanged,
		ActorID:    userID,
		EntityType: "membership",
		EntityID:   userID,
		Payload:    payload,
	})
}

// EmitCharacterChanged emits a character.changed event.
func (e *Emitter) EmitCharacterChanged(ctx context.Context, campaignID, actorID, characterID string, payload any) (Event, error) {
	return e.Emit(ctx, EmitInput{
		CampaignID: campaignID,
		Type:       TypeCharacterChanged,
		ActorID:    actorID,
		EntityType: "character",
		EntityID:   characterID,
		Payload:    payload,
	})
}

// EmitCombatChanged emits a combat.changed event.
func (e *Emitter) EmitCombatChanged(ctx context.Context, campaignID, actorID string, payload any) (Event, error) {
	return e.Emit(ctx, EmitInput{
		CampaignID: campaignID,
		Type:       TypeCombatChanged,
		ActorID:    actorID,
		EntityType: "combat",
		EntityID:   campaignID,
		Payload:    payload,
	})
}

// EmitUserRegistered emits a user.registered event from the
// post-registration hook.
func (e *Emitter) EmitUserRegistered(ctx context.Context, userID string) (Event, error) {
	return e.Emit(ctx, EmitInput{
		Type:       TypeUserRegistered,
		ActorID:    userID,
		EntityType: "user",
		EntityID:   userID,
	})
}
