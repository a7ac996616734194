// Package campaign holds the campaign aggregate and its pure domain rules.
//
// A campaign is the tenancy boundary for the platform: memberships,
// characters, and combat state all hang off a campaign id, and the owner
// recorded here anchors every authorization decision in campaign/policy.
package campaign
