package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arathel/wardtable/internal/campaign/character"
	"github.com/arathel/wardtable/internal/campaign/policy"
	"github.com/arathel/wardtable/internal/event"
	"github.com/arathel/wardtable/internal/storage"
)

// CreateCharacterInput describes a character creation request. The owning
// user is always the acting principal; there is no create-for-other path.
type CreateCharacterInput struct {
	Name string
	Hp   int
	Xp   int
}

// CreateCharacter creates a character owned by the principal in a
// campaign the principal belongs to.
func (s *Service) CreateCharacter(ctx context.Context, principalID, campaignID string, input CreateCharacterInput) (character.Character, error) {
	unlock := s.locks.lock(strings.TrimSpace(campaignID))
	defer unlock()

	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
	if err != nil {
		return character.Character{}, err
	}

	ch, err := character.CreateCharacter(character.CreateCharacterInput{
		CampaignID: c.ID,
		UserID:     strings.TrimSpace(principalID),
		Name:       input.Name,
		Hp:         input.Hp,
		Xp:         input.Xp,
	}, s.clock, s.idGenerator)
	if err != nil {
		return character.Character{}, err
	}

	if err := s.stores.Character.PutCharacter(ctx, ch); err != nil {
		return character.Character{}, err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitCharacterChanged(ctx, c.ID, ch.UserID, ch.ID, map[string]string{"action": "created"})
	})
	return ch, nil
}

// GetCharacter returns a character to any member of its campaign.
func (s *Service) GetCharacter(ctx context.Context, principalID, campaignID, characterID string) (character.Character, error) {
	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
	if err != nil {
		return character.Character{}, err
	}

	ch, err := s.stores.Character.GetCharacter(ctx, c.ID, strings.TrimSpace(characterID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return character.Character{}, policy.ErrNotFound
		}
		return character.Character{}, err
	}
	return ch, nil
}

// ListCharacters returns every character in the campaign.
func (s *Service) ListCharacters(ctx context.Context, principalID, campaignID string) ([]character.Character, error) {
	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
	if err != nil {
		return nil, err
	}
	return s.stores.Character.ListCharacters(ctx, c.ID)
}

// PatchCharacterState applies a partial state update. Both checks run per
// call: the principal must still be a member, and must be the character's
// owning user.
func (s *Service) PatchCharacterState(ctx context.Context, principalID, campaignID, characterID string, patch character.StatePatch) (character.Character, error) {
	unlock := s.locks.lock(strings.TrimSpace(campaignID))
	defer unlock()

	ch, err := s.ownedCharacter(ctx, principalID, campaignID, characterID)
	if err != nil {
		return character.Character{}, err
	}

	updated, err := character.ApplyStatePatch(ch, patch, s.clock)
	if err != nil {
		return character.Character{}, err
	}

	if err := s.stores.Character.PutCharacter(ctx, updated); err != nil {
		return character.Character{}, err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitCharacterChanged(ctx, updated.CampaignID, updated.UserID, updated.ID, map[string]string{"action": "patched"})
	})
	return updated, nil
}

// DeleteCharacter removes a character; only its owning user may.
func (s *Service) DeleteCharacter(ctx context.Context, principalID, campaignID, characterID string) error {
	unlock := s.locks.lock(strings.TrimSpace(campaignID))
	defer unlock()

	ch, err := s.ownedCharacter(ctx, principalID, campaignID, characterID)
	if err != nil {
		return err
	}

	if err := s.stores.Character.DeleteCharacter(ctx, ch.CampaignID, ch.ID); err != nil {
		return err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitCharacterChanged(ctx, ch.CampaignID, ch.UserID, ch.ID, map[string]string{"action": "deleted"})
	})
	return nil
}

// ownedCharacter loads a character after verifying membership, and denies
// principals who are not the owning user. Members who are not the owner
// get Forbidden; they already know the campaign exists.
func (s *Service) ownedCharacter(ctx context.Context, principalID, campaignID, characterID string) (character.Character, error) {
	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
	if err != nil {
		return character.Character{}, err
	}

	ch, err := s.stores.Character.GetCharacter(ctx, c.ID, strings.TrimSpace(characterID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return character.Character{}, policy.ErrNotFound
		}
		return character.Character{}, err
	}
	if ch.UserID != strings.TrimSpace(principalID) {
		return character.Character{}, policy.ErrForbidden
	}
	return ch, nil
}
