package campaign

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/arathel/wardtable/internal/errors"
	"github.com/arathel/wardtable/internal/id"
)

var (
	// ErrEmptyName indicates a missing campaign name.
	ErrEmptyName = apperrors.New(apperrors.CodeCampaignNameEmpty, "campaign name is required")
	// ErrEmptyOwnerID indicates a missing campaign owner.
	ErrEmptyOwnerID = apperrors.New(apperrors.CodeCampaignEmptyOwnerID, "campaign owner id is required")
	// ErrInactive indicates an operation against a deactivated campaign.
	ErrInactive = apperrors.New(apperrors.CodeCampaignInactive, "campaign is not active")
)

// Campaign represents metadata for a campaign.
//
// OwnerID is the creating user's principal id. The owner is a full member
// for all authorization purposes even without a membership row, plus
// elevated rights (update/delete campaign, manage combat state).
type Campaign struct {
	ID      string
	Name    string
	OwnerID string
	// IsActive gates invite resolution and joins. Deactivated campaigns
	// keep their rows but stop accepting new members.
	IsActive bool
	// InviteCode is an opaque token resolving to this campaign for join
	// requests. Unique across active campaigns.
	InviteCode string
	// CurrentScene is a free-form label for the scene in play.
	CurrentScene string
	// GameState is an opaque JSON document owned by the table, not the core.
	GameState string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCampaignInput describes the metadata needed to create a campaign.
type CreateCampaignInput struct {
	Name    string
	OwnerID string
}

// CreateCampaign creates a new campaign with a generated ID, invite code,
// and timestamps. The campaign starts active.
func CreateCampaign(input CreateCampaignInput, now func() time.Time, idGenerator func() (string, error)) (Campaign, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCampaignInput(input)
	if err != nil {
		return Campaign{}, err
	}

	campaignID, err := idGenerator()
	if err != nil {
		return Campaign{}, fmt.Errorf("generate campaign id: %w", err)
	}
	inviteCode, err := idGenerator()
	if err != nil {
		return Campaign{}, fmt.Errorf("generate invite code: %w", err)
	}

	createdAt := now().UTC()
	return Campaign{
		ID:         campaignID,
		Name:       normalized.Name,
		OwnerID:    normalized.OwnerID,
		IsActive:   true,
		InviteCode: inviteCode,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}, nil
}

// NormalizeCreateCampaignInput trims and validates campaign input metadata.
func NormalizeCreateCampaignInput(input CreateCampaignInput) (CreateCampaignInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateCampaignInput{}, ErrEmptyName
	}
	input.OwnerID = strings.TrimSpace(input.OwnerID)
	if input.OwnerID == "" {
		return CreateCampaignInput{}, ErrEmptyOwnerID
	}
	return input, nil
}

// UpdateCampaignInput describes the owner-editable campaign fields.
// Nil fields are left unchanged.
type UpdateCampaignInput struct {
	Name         *string
	CurrentScene *string
	GameState    *string
	IsActive     *bool
}

// ApplyUpdate applies an owner edit and refreshes the updated timestamp.
func ApplyUpdate(c Campaign, input UpdateCampaignInput, now func() time.Time) (Campaign, error) {
	if now == nil {
		now = time.Now
	}

	updated := c
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return Campaign{}, ErrEmptyName
		}
		updated.Name = name
	}
	if input.CurrentScene != nil {
		updated.CurrentScene = strings.TrimSpace(*input.CurrentScene)
	}
	if input.GameState != nil {
		updated.GameState = *input.GameState
	}
	if input.IsActive != nil {
		updated.IsActive = *input.IsActive
	}
	updated.UpdatedAt = now().UTC()
	return updated, nil
}
