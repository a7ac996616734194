// Package character provides character sheets and their gameplay state.
package character

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/arathel/wardtable/internal/errors"
	"github.com/arathel/wardtable/internal/id"
)

var (
	// ErrEmptyCampaignID indicates a missing campaign ID.
	ErrEmptyCampaignID = apperrors.New(apperrors.CodeCharacterEmptyCampaignID, "campaign id is required")
	// ErrEmptyUserID indicates a missing owning user ID.
	ErrEmptyUserID = apperrors.New(apperrors.CodeCharacterEmptyUserID, "user id is required")
	// ErrEmptyName indicates a missing character name.
	ErrEmptyName = apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	// ErrInvalidHp indicates a negative hp value.
	ErrInvalidHp = apperrors.New(apperrors.CodeCharacterInvalidHp, "hp must be zero or greater")
	// ErrInvalidXp indicates a negative xp value.
	ErrInvalidXp = apperrors.New(apperrors.CodeCharacterInvalidXp, "xp must be zero or greater")
)

// Character is owned by exactly one (campaign, user) pair.
// UserID is the creating player and is immutable after creation.
type Character struct {
	ID         string
	CampaignID string
	UserID     string
	Name       string
	Hp         int
	Xp         int
	// Position is a free-form grid or map reference.
	Position string
	// StatusEffects lists active effects by label.
	StatusEffects []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateCharacterInput describes the data needed to create a character.
type CreateCharacterInput struct {
	CampaignID string
	UserID     string
	Name       string
	Hp         int
	Xp         int
}

// CreateCharacter creates a new character with a generated ID and timestamps.
func CreateCharacter(input CreateCharacterInput, now func() time.Time, idGenerator func() (string, error)) (Character, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	normalized, err := NormalizeCreateCharacterInput(input)
	if err != nil {
		return Character{}, err
	}

	characterID, err := idGenerator()
	if err != nil {
		return Character{}, fmt.Errorf("generate character id: %w", err)
	}

	createdAt := now().UTC()
	return Character{
		ID:         characterID,
		CampaignID: normalized.CampaignID,
		UserID:     normalized.UserID,
		Name:       normalized.Name,
		Hp:         normalized.Hp,
		Xp:         normalized.Xp,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}, nil
}

// NormalizeCreateCharacterInput trims and validates character input.
func NormalizeCreateCharacterInput(input CreateCharacterInput) (CreateCharacterInput, error) {
	input.CampaignID = strings.TrimSpace(input.CampaignID)
	if input.CampaignID == "" {
		return CreateCharacterInput{}, ErrEmptyCampaignID
	}
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return CreateCharacterInput{}, ErrEmptyUserID
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return CreateCharacterInput{}, ErrEmptyName
	}
	if err := ValidateState(input.Hp, input.Xp); err != nil {
		return CreateCharacterInput{}, err
	}
	return input, nil
}

// ValidateState validates gameplay-state invariants.
func ValidateState(hp, xp int) error {
	if hp < 0 {
		return apperrors.WithMetadata(apperrors.CodeCharacterInvalidHp,
			fmt.Sprintf("hp %d must be zero or greater", hp),
			map[string]string{"Hp": strconv.Itoa(hp)})
	}
	if xp < 0 {
		return apperrors.WithMetadata(apperrors.CodeCharacterInvalidXp,
			fmt.Sprintf("xp %d must be zero or greater", xp),
			map[string]string{"Xp": strconv.Itoa(xp)})
	}
	return nil
}

// StatePatch describes optional gameplay fields for patching a character.
// Nil fields are left unchanged.
type StatePatch struct {
	Hp            *int
	Xp            *int
	Position      *string
	StatusEffects *[]string
}

// ApplyStatePatch applies a patch to an existing character, returning a new value.
func ApplyStatePatch(existing Character, patch StatePatch, now func() time.Time) (Character, error) {
	if now == nil {
		now = time.Now
	}

	result := existing
	if patch.Hp != nil {
		result.Hp = *patch.Hp
	}
	if patch.Xp != nil {
		result.Xp = *patch.Xp
	}
	if patch.Position != nil {
		result.Position = strings.TrimSpace(*patch.Position)
	}
	if patch.StatusEffects != nil {
		result.StatusEffects = normalizeStatusEffects(*patch.StatusEffects)
	}

	if err := ValidateState(result.Hp, result.Xp); err != nil {
		return Character{}, err
	}

	result.UpdatedAt = now().UTC()
	return result, nil
}

// normalizeStatusEffects trims labels and drops empties while keeping order.
func normalizeStatusEffects(effects []string) []string {
	normalized := make([]string, 0, len(effects))
	for _, effect := range effects {
		effect = strings.TrimSpace(effect)
		if effect == "" {
			continue
		}
		normalized = append(normalized, effect)
	}
	return normalized
}
