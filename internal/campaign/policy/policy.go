// Package policy provides the authorization engine for campaign resources.
//
// Every capability decision funnels through Allows so the owner-implies-
// member rule lives in exactly one place. Decisions are pure functions of
// current store state; nothing here mutates or caches.
package policy

import (
	"context"
	"errors"
	"strings"

	"github.com/arathel/wardtable/internal/campaign"
	"github.com/arathel/wardtable/internal/campaign/member"
	apperrors "github.com/arathel/wardtable/internal/errors"
	"github.com/arathel/wardtable/internal/storage"
)

// Capability is the access level an operation requires.
type Capability int

const (
	// CapabilityUnspecified represents an invalid capability value.
	CapabilityUnspecified Capability = iota
	// CapabilityMember requires standing access to the campaign.
	CapabilityMember
	// CapabilityOwner requires campaign ownership.
	CapabilityOwner
	// CapabilityDM requires a membership row with the DM flag.
	CapabilityDM
)

// Label returns the string label for a capability.
func (c Capability) Label() string {
	switch c {
	case CapabilityMember:
		return "MEMBER"
	case CapabilityOwner:
		return "OWNER"
	case CapabilityDM:
		return "DM"
	default:
		return "UNSPECIFIED"
	}
}

var (
	// ErrUnauthenticated indicates a missing or empty principal.
	ErrUnauthenticated = apperrors.New(apperrors.CodeUnauthenticated, "principal is required")
	// ErrForbidden indicates the principal holds membership but not the
	// required capability.
	ErrForbidden = apperrors.New(apperrors.CodeForbidden, "principal lacks permission")
	// ErrNotFound hides campaign-scoped resources from principals without
	// standing access; indistinguishable from a missing campaign.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "campaign not found")
)

// Allows reports whether the principal holds the capability for the
// campaign, given their membership row (nil when no row exists).
//
// Ownership is always a superset of membership. An earlier revision denied
// owners without a membership row read access to characters; the invariant
// is owner implies member for every resource, so it is enforced here and
// nowhere else.
func Allows(c campaign.Campaign, m *member.Membership, principalID string, capability Capability) bool {
	principalID = strings.TrimSpace(principalID)
	if principalID == "" {
		return false
	}

	isOwner := principalID == c.OwnerID
	switch capability {
	case CapabilityMember:
		return isOwner || m != nil
	case CapabilityOwner:
		return isOwner
	case CapabilityDM:
		return m != nil && m.IsDM
	default:
		return false
	}
}

// Engine evaluates capability decisions against the campaign and
// membership stores.
type Engine struct {
	campaigns   storage.CampaignStore
	memberships storage.MembershipStore
}

// NewEngine creates an authorization engine over the given stores.
func NewEngine(campaigns storage.CampaignStore, memberships storage.MembershipStore) *Engine {
	return &Engine{campaigns: campaigns, memberships: memberships}
}

// Decide evaluates (principal, campaign, capability) and returns the
// campaign on allow. Denials surface as typed errors, failing closed:
//
//   - empty principal: ErrUnauthenticated for every capability
//   - unknown campaign: ErrNotFound
//   - principal without standing access: ErrNotFound (existence hidden)
//   - member lacking the capability: ErrForbidden
func (e *Engine) Decide(ctx context.Context, principalID, campaignID string, capability Capability) (campaign.Campaign, error) {
	if e == nil || e.campaigns == nil || e.memberships == nil {
		return campaign.Campaign{}, errors.New("authorization engine is not configured")
	}

	principalID = strings.TrimSpace(principalID)
	if principalID == "" {
		return campaign.Campaign{}, ErrUnauthenticated
	}

	c, err := e.campaigns.GetCampaign(ctx, strings.TrimSpace(campaignID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return campaign.Campaign{}, ErrNotFound
		}
		return campaign.Campaign{}, err
	}

	var membership *member.Membership
	m, err := e.memberships.GetMembership(ctx, c.ID, principalID)
	switch {
	case err == nil:
		membership = &m
	case errors.Is(err, storage.ErrNotFound):
		membership = nil
	default:
		return campaign.Campaign{}, err
	}

	if Allows(c, membership, principalID, capability) {
		return c, nil
	}

	// Principals with no standing access never learn the campaign exists.
	if !Allows(c, membership, principalID, CapabilityMember) {
		return campaign.Campaign{}, ErrNotFound
	}
	return campaign.Campaign{}, ErrForbidden
}

// DecideAny evaluates capabilities left to right and allows when any one
// of them holds. Guard rows like "Owner or DM" use this.
func (e *Engine) DecideAny(ctx context.Context, principalID, campaignID string, capabilities ...Capability) (campaign.Campaign, error) {
	var lastErr error
	for _, capability := range capabilities {
		c, err := e.Decide(ctx, principalID, campaignID, capability)
		if err == nil {
			return c, nil
		}
		lastErr = err
		// Unauthenticated and store failures are terminal; trying the
		// next capability cannot change them.
		if !errors.Is(err, ErrForbidden) && !errors.Is(err, ErrNotFound) {
			return campaign.Campaign{}, err
		}
	}
	if lastErr == nil {
		lastErr = ErrForbidden
	}
	return campaign.Campaign{}, lastErr
}
