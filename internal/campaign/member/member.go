// Package member provides campaign membership records.
package member

import (
	"strings"
	"time"

	apperrors "github.com/arathel/wardtable/internal/errors"
)

var (
	// ErrEmptyCampaignID indicates a missing campaign ID.
	ErrEmptyCampaignID = apperrors.New(apperrors.CodeMembershipEmptyCampaignID, "campaign id is required")
	// ErrEmptyUserID indicates a missing user ID.
	ErrEmptyUserID = apperrors.New(apperrors.CodeMembershipEmptyUserID, "user id is required")
	// ErrAlreadyMember indicates a duplicate join for the same campaign and user.
	ErrAlreadyMember = apperrors.New(apperrors.CodeMembershipAlreadyExists, "membership already exists")
	// ErrOwnerRedundant indicates the campaign owner attempting to join their own campaign.
	ErrOwnerRedundant = apperrors.New(apperrors.CodeMembershipOwnerRedundant, "owner is already a member")
)

// Membership represents a user's standing access to a campaign.
// At most one row exists per (campaign, user) pair.
type Membership struct {
	CampaignID string
	UserID     string
	// IsDM marks a member with elevated in-session authority (combat control).
	IsDM     bool
	JoinedAt time.Time
}

// JoinInput describes the data needed to create a membership row.
type JoinInput struct {
	CampaignID string
	UserID     string
	IsDM       bool
}

// Join builds a membership row for a user entering a campaign.
func Join(input JoinInput, now func() time.Time) (Membership, error) {
	if now == nil {
		now = time.Now
	}

	normalized, err := NormalizeJoinInput(input)
	if err != nil {
		return Membership{}, err
	}

	return Membership{
		CampaignID: normalized.CampaignID,
		UserID:     normalized.UserID,
		IsDM:       normalized.IsDM,
		JoinedAt:   now().UTC(),
	}, nil
}

// NormalizeJoinInput trims and validates membership input.
func NormalizeJoinInput(input JoinInput) (JoinInput, error) {
	input.CampaignID = strings.TrimSpace(input.CampaignID)
	if input.CampaignID == "" {
		return JoinInput{}, ErrEmptyCampaignID
	}
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return JoinInput{}, ErrEmptyUserID
	}
	return input, nil
}
