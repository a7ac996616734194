package storage

import (
	"context"
	"errors"

	"github.com/arathel/wardtable/internal/campaign"
	"github.com/arathel/wardtable/internal/campaign/character"
	"github.com/arathel/wardtable/internal/campaign/combat"
	"github.com/arathel/wardtable/internal/campaign/member"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates an insert that violates a uniqueness rule.
var ErrAlreadyExists = errors.New("record already exists")

// ErrStaleState indicates a compare-and-set lost against a concurrent write.
var ErrStaleState = errors.New("state changed concurrently")

// CampaignStore persists campaign metadata records.
type CampaignStore interface {
	PutCampaign(ctx context.Context, c campaign.Campaign) error
	GetCampaign(ctx context.Context, id string) (campaign.Campaign, error)
	// GetCampaignByInviteCode resolves an invite code against active
	// campaigns only; inactive campaigns return ErrNotFound.
	GetCampaignByInviteCode(ctx context.Context, code string) (campaign.Campaign, error)
	// ListCampaignsForUser returns campaigns the user owns or belongs to.
	ListCampaignsForUser(ctx context.Context, userID string) ([]campaign.Campaign, error)
	// DeleteCampaign removes a campaign and cascades to memberships,
	// characters, and combat state.
	DeleteCampaign(ctx context.Context, id string) error
}

// MembershipStore persists campaign membership rows.
type MembershipStore interface {
	// PutMembership inserts a membership row; a duplicate (campaign, user)
	// pair returns ErrAlreadyExists.
	PutMembership(ctx context.Context, m member.Membership) error
	GetMembership(ctx context.Context, campaignID, userID string) (member.Membership, error)
	ListMemberships(ctx context.Context, campaignID string) ([]member.Membership, error)
	DeleteMembership(ctx context.Context, campaignID, userID string) error
}

// CharacterStore persists character records.
type CharacterStore interface {
	PutCharacter(ctx context.Context, ch character.Character) error
	GetCharacter(ctx context.Context, campaignID, characterID string) (character.Character, error)
	ListCharacters(ctx context.Context, campaignID string) ([]character.Character, error)
	DeleteCharacter(ctx context.Context, campaignID, characterID string) error
}

// CombatStore persists the per-campaign combat singleton.
type CombatStore interface {
	// GetCombatState returns the stored combat state, or ErrNotFound when
	// no combat has ever started for the campaign.
	GetCombatState(ctx context.Context, campaignID string) (combat.State, error)
	// SwapCombatState persists next only while the stored counters still
	// match prior's (is_active, round, turn_index); when they no longer do
	// it returns ErrStaleState. An absent row matches the idle zero state,
	// which covers lazy creation on first combat start.
	SwapCombatState(ctx context.Context, prior, next combat.State) error
}
