package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arathel/wardtable/internal/campaign/invite"
	"github.com/arathel/wardtable/internal/campaign/member"
	"github.com/arathel/wardtable/internal/campaign/policy"
	"github.com/arathel/wardtable/internal/event"
	"github.com/arathel/wardtable/internal/storage"
)

// JoinCampaignInput carries the credential for a join request: a plain
// invite code, or a signed join grant naming the campaign directly when
// a verifier is configured.
type JoinCampaignInput struct {
	InviteCode string
	// CampaignID is required with JoinGrant; the grant must bind it.
	CampaignID string
	JoinGrant  string
}

// JoinCampaign admits the principal into the campaign the credential
// resolves to. Resolution and insert run under the campaign lock so the
// active check and the membership row stay consistent.
func (s *Service) JoinCampaign(ctx context.Context, principalID string, input JoinCampaignInput) (member.Membership, error) {
	principalID = strings.TrimSpace(principalID)
	if principalID == "" {
		return member.Membership{}, policy.ErrUnauthenticated
	}

	campaignID, err := s.resolveJoinTarget(ctx, principalID, input)
	if err != nil {
		return member.Membership{}, err
	}

	unlock := s.locks.lock(campaignID)
	defer unlock()

	// Re-read under the lock: the campaign may have been deactivated or
	// deleted between resolution and insert.
	c, err := s.stores.Campaign.GetCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return member.Membership{}, invite.ErrNotFound
		}
		return member.Membership{}, err
	}
	if !c.IsActive {
		return member.Membership{}, invite.ErrNotFound
	}
	if principalID == c.OwnerID {
		return member.Membership{}, member.ErrOwnerRedundant
	}

	m, err := member.Join(member.JoinInput{
		CampaignID: c.ID,
		UserID:     principalID,
	}, s.clock)
	if err != nil {
		return member.Membership{}, err
	}

	if err := s.stores.Membership.PutMembership(ctx, m); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return member.Membership{}, member.ErrAlreadyMember
		}
		return member.Membership{}, err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitMembershipChanged(ctx, c.ID, principalID, map[string]string{"action": "joined"})
	})
	return m, nil
}

// resolveJoinTarget maps a join credential to a campaign id. A join grant
// takes precedence when one is supplied and a verifier is configured.
func (s *Service) resolveJoinTarget(ctx context.Context, principalID string, input JoinCampaignInput) (string, error) {
	grant := strings.TrimSpace(input.JoinGrant)
	if grant != "" {
		if !s.joinGrants.Enabled() {
			return "", invite.ErrNotFound
		}
		campaignID := strings.TrimSpace(input.CampaignID)
		if _, err := invite.ValidateJoinGrant(grant, invite.JoinGrantExpectation{
			CampaignID: campaignID,
			UserID:     principalID,
		}, s.joinGrants); err != nil {
			return "", err
		}
		return campaignID, nil
	}

	res, err := s.resolver.ResolveCode(ctx, input.InviteCode)
	if err != nil {
		return "", err
	}
	return res.CampaignID, nil
}

// LeaveCampaign deletes the principal's own membership row. Owners have
// no row to delete; membership by ownership cannot be resigned.
func (s *Service) LeaveCampaign(ctx context.Context, principalID, campaignID string) error {
	principalID = strings.TrimSpace(principalID)
	if principalID == "" {
		return policy.ErrUnauthenticated
	}

	unlock := s.locks.lock(strings.TrimSpace(campaignID))
	defer unlock()

	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
	if err != nil {
		return err
	}

	if _, err := s.stores.Membership.GetMembership(ctx, c.ID, principalID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return policy.ErrNotFound
		}
		return err
	}
	if err := s.stores.Membership.DeleteMembership(ctx, c.ID, principalID); err != nil {
		return err
	}

	s.emit(ctx, func(ctx context.Context) (event.Event, error) {
		return s.emitter.EmitMembershipChanged(ctx, c.ID, principalID, map[string]string{"action": "left"})
	})
	return nil
}

// ListMembers returns every membership row in the campaign.
func (s *Service) ListMembers(ctx context.Context, principalID, campaignID string) ([]member.Membership, error) {
	c, err := s.authz.Decide(ctx, principalID, campaignID, policy.CapabilityMember)
	if err != nil {
		return nil, err
	}
	return s.stores.Membership.ListMemberships(ctx, c.ID)
}
