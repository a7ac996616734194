package service

import (
	"context"
	"strings"

	"github.com/arathel/wardtable/internal/campaign"
	"github.com/arathel/wardtable/internal/campaign/policy"
	"github.com/arathel/wardtable/internal/event"
)

// CreateCampaign creates a campaign owned by the acting principal. Any
// authenticated principal may create; the invite code is minted here.
func (s *Service) CreateCampaign(ctx context.Context, principalID, name string) (campaign.Campaign, error) {
	principalID = strings.TrimSpace(principalID)
	if principalID == "" {
		return campaign.Campaign{}, policy.ErrUnauthenticated
	}

	c, err := campaign.CreateCampaign(campaign.CreateCampaignInput{
		Name:    name,
		OwnerID: principalID,
	}, s.clock, s.idGenerator)
	if err != nil {
		return campaign.Campaign{}, err
	}

	if err := s.stores.Campaign.PutCampaign(ctx, c); err != nil {
		return campaign.Campaign{}, err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitCampaignChanged(ctx, c.ID, principalID, map[string]string{"action": "created"})
	})
	return c, nil
}

// GetCampaign returns a campaign to a principal with standing access.
func (s *Service) GetCampaign(ctx context.Context, principalID, campaignID string) (campaign.Campaign, error) {
	return s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
}

// ListCampaigns returns the campaigns the principal owns or belongs to.
func (s *Service) ListCampaigns(ctx context.Context, principalID string) ([]campaign.Campaign, error) {
	principalID = strings.TrimSpace(principalID)
	if principalID == "" {
		return nil, policy.ErrUnauthenticated
	}
	return s.stores.Campaign.ListCampaignsForUser(ctx, principalID)
}

// UpdateCampaign applies owner-only metadata changes: scene, game state,
// and the active flag.
func (s *Service) UpdateCampaign(ctx context.Context, principalID, campaignID string, input campaign.UpdateCampaignInput) (campaign.Campaign, error) {
	unlock := s.locks.lock(strings.TrimSpace(campaignID))
	defer unlock()

	current, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityOwner)
	if err != nil {
		return campaign.Campaign{}, err
	}

	updated, err := campaign.ApplyUpdate(current, input, s.clock)
	if err != nil {
		return campaign.Campaign{}, err
	}

	if err := s.stores.Campaign.PutCampaign(ctx, updated); err != nil {
		return campaign.Campaign{}, err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitCampaignChanged(ctx, updated.ID, strings.TrimSpace(principalID), map[string]string{"action": "updated"})
	})
	return updated, nil
}

// DeleteCampaign removes a campaign and everything scoped under it:
// memberships, characters, and combat state cascade in the store.
func (s *Service) DeleteCampaign(ctx context.Context, principalID, campaignID string) error {
	unlock := s.locks.lock(strings.TrimSpace(campaignID))
	defer unlock()

	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityOwner)
	if err != nil {
		return err
	}

	if err := s.stores.Campaign.DeleteCampaign(ctx, c.ID); err != nil {
		return err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitCampaignChanged(ctx, c.ID, strings.TrimSpace(principalID), map[string]string{"action": "deleted"})
	})
	return nil
}
