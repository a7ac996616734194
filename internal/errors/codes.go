// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Auth errors
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"

	// Campaign errors
	CodeCampaignNameEmpty               Code = "CAMPAIGN_NAME_EMPTY"
	CodeCampaignEmptyOwnerID            Code = "CAMPAIGN_EMPTY_OWNER_ID"
	CodeCampaignInactive                Code = "CAMPAIGN_INACTIVE"
	CodeCampaignInvalidStatusTransition Code = "CAMPAIGN_INVALID_STATUS_TRANSITION"

	// Membership errors
	CodeMembershipEmptyCampaignID Code = "MEMBERSHIP_EMPTY_CAMPAIGN_ID"
	CodeMembershipEmptyUserID     Code = "MEMBERSHIP_EMPTY_USER_ID"
	CodeMembershipAlreadyExists   Code = "MEMBERSHIP_ALREADY_EXISTS"
	CodeMembershipOwnerRedundant  Code = "MEMBERSHIP_OWNER_REDUNDANT"

	// Invite errors
	CodeInviteCodeEmpty        Code = "INVITE_CODE_EMPTY"
	CodeInviteJoinGrantInvalid Code = "INVITE_JOIN_GRANT_INVALID"
	CodeInviteJoinGrantExpired Code = "INVITE_JOIN_GRANT_EXPIRED"

	// Character errors
	CodeCharacterEmptyCampaignID Code = "CHARACTER_EMPTY_CAMPAIGN_ID"
	CodeCharacterEmptyUserID     Code = "CHARACTER_EMPTY_USER_ID"
	CodeCharacterEmptyName       Code = "CHARACTER_EMPTY_NAME"
	CodeCharacterInvalidHp       Code = "CHARACTER_INVALID_HP"
	CodeCharacterInvalidXp       Code = "CHARACTER_INVALID_XP"

	// Combat errors
	CodeCombatEmptyInitiative Code = "COMBAT_EMPTY_INITIATIVE"
	CodeCombatNotActive       Code = "COMBAT_NOT_ACTIVE"
	CodeCombatStaleTurn       Code = "COMBAT_STALE_TURN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeCampaignNameEmpty,
		CodeCampaignEmptyOwnerID,
		CodeMembershipEmptyCampaignID,
		CodeMembershipEmptyUserID,
		CodeInviteCodeEmpty,
		CodeCharacterEmptyCampaignID,
		CodeCharacterEmptyUserID,
		CodeCharacterEmptyName,
		CodeCharacterInvalidHp,
		CodeCharacterInvalidXp,
		CodeCombatEmptyInitiative:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeCampaignInactive,
		CodeCampaignInvalidStatusTransition,
		CodeCombatNotActive:
		return codes.FailedPrecondition

	// AlreadyExists / Aborted - conflicting writes
	case CodeMembershipAlreadyExists,
		CodeMembershipOwnerRedundant:
		return codes.AlreadyExists
	case CodeCombatStaleTurn,
		CodeConflict:
		return codes.Aborted

	// NotFound - resource doesn't exist (or must appear not to)
	case CodeNotFound:
		return codes.NotFound

	// Auth
	case CodeUnauthenticated,
		CodeInviteJoinGrantInvalid,
		CodeInviteJoinGrantExpired:
		return codes.Unauthenticated
	case CodeForbidden:
		return codes.PermissionDenied

	default:
		return codes.Internal
	}
}
