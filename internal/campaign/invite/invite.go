// Package invite provides invite-code resolution and signed join grants.
package invite

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/arathel/wardtable/internal/errors"
	"github.com/arathel/wardtable/internal/storage"
)

var (
	// ErrEmptyCode indicates a missing invite code.
	ErrEmptyCode = apperrors.New(apperrors.CodeInviteCodeEmpty, "invite code is required")
	// ErrNotFound indicates an unknown code or an inactive campaign.
	// The two cases are deliberately indistinguishable.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "invite code not found")
)

// Resolution is the join target an invite code resolves to.
type Resolution struct {
	CampaignID string
	Name       string
	OwnerID    string
}

// Resolver resolves invite codes against active campaigns.
type Resolver struct {
	campaigns storage.CampaignStore
}

// NewResolver creates a resolver over the campaign store.
func NewResolver(campaigns storage.CampaignStore) *Resolver {
	return &Resolver{campaigns: campaigns}
}

// ResolveCode maps an invite code to its campaign. Codes for inactive
// campaigns resolve to ErrNotFound, the same as unknown codes.
func (r *Resolver) ResolveCode(ctx context.Context, code string) (Resolution, error) {
	if r == nil || r.campaigns == nil {
		return Resolution{}, errors.New("invite resolver is not configured")
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return Resolution{}, ErrEmptyCode
	}

	c, err := r.campaigns.GetCampaignByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Resolution{}, ErrNotFound
		}
		return Resolution{}, err
	}
	if !c.IsActive {
		return Resolution{}, ErrNotFound
	}

	return Resolution{
		CampaignID: c.ID,
		Name:       c.Name,
		OwnerID:    c.OwnerID,
	}, nil
}
