package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnauthenticated                 = "UNAUTHENTICATED"
	CodeForbidden                       = "FORBIDDEN"
	CodeCampaignNameEmpty               = "CAMPAIGN_NAME_EMPTY"
	CodeCampaignEmptyOwnerID            = "CAMPAIGN_EMPTY_OWNER_ID"
	CodeCampaignInactive                = "CAMPAIGN_INACTIVE"
	CodeCampaignInvalidStatusTransition = "CAMPAIGN_INVALID_STATUS_TRANSITION"
	CodeMembershipEmptyCampaignID       = "MEMBERSHIP_EMPTY_CAMPAIGN_ID"
	CodeMembershipEmptyUserID           = "MEMBERSHIP_EMPTY_USER_ID"
	CodeMembershipAlreadyExists         = "MEMBERSHIP_ALREADY_EXISTS"
	CodeMembershipOwnerRedundant        = "MEMBERSHIP_OWNER_REDUNDANT"
	CodeInviteCodeEmpty                 = "INVITE_CODE_EMPTY"
	CodeInviteJoinGrantInvalid          = "INVITE_JOIN_GRANT_INVALID"
	CodeInviteJoinGrantExpired          = "INVITE_JOIN_GRANT_EXPIRED"
	CodeCharacterEmptyCampaignID        = "CHARACTER_EMPTY_CAMPAIGN_ID"
	CodeCharacterEmptyUserID            = "CHARACTER_EMPTY_USER_ID"
	CodeCharacterEmptyName              = "CHARACTER_EMPTY_NAME"
	CodeCharacterInvalidHp              = "CHARACTER_INVALID_HP"
	CodeCharacterInvalidXp              = "CHARACTER_INVALID_XP"
	CodeCombatEmptyInitiative           = "COMBAT_EMPTY_INITIATIVE"
	CodeCombatNotActive                 = "COMBAT_NOT_ACTIVE"
	CodeCombatStaleTurn                 = "COMBAT_STALE_TURN"
	CodeNotFound                        = "NOT_FOUND"
	CodeConflict                        = "CONFLICT"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Auth errors
		CodeUnauthenticated: "Sign in to continue",
		CodeForbidden:       "You do not have permission to do that",

		// Campaign errors
		CodeCampaignNameEmpty:               "Campaign name cannot be empty",
		CodeCampaignEmptyOwnerID:            "Campaign owner is required",
		CodeCampaignInactive:                "This campaign is no longer active",
		CodeCampaignInvalidStatusTransition: "Cannot change campaign from {{.FromStatus}} to {{.ToStatus}}",

		// Membership errors
		CodeMembershipEmptyCampaignID: "Campaign ID is required for membership",
		CodeMembershipEmptyUserID:     "User ID is required for membership",
		CodeMembershipAlreadyExists:   "You are already a member of this campaign",
		CodeMembershipOwnerRedundant:  "The campaign owner is already a member",

		// Invite errors
		CodeInviteCodeEmpty:        "An invite code is required to join",
		CodeInviteJoinGrantInvalid: "Join grant is invalid",
		CodeInviteJoinGrantExpired: "Join grant has expired",

		// Character errors
		CodeCharacterEmptyCampaignID: "Campaign ID is required for character",
		CodeCharacterEmptyUserID:     "User ID is required for character",
		CodeCharacterEmptyName:       "Character name cannot be empty",
		CodeCharacterInvalidHp:       "HP must be zero or greater",
		CodeCharacterInvalidXp:       "XP must be zero or greater",

		// Combat errors
		CodeCombatEmptyInitiative: "Initiative order cannot be empty",
		CodeCombatNotActive:       "No combat is active for this campaign",
		CodeCombatStaleTurn:       "Combat advanced concurrently, retry with fresh state",

		// Storage errors
		CodeNotFound: "The requested resource was not found",
		CodeConflict: "The operation conflicts with the current state",
	},
}
