// Package registration implements voter registration inside the
// identity-access context.
//
// Registration creates the account record with a hashed credential, stores
// the applicant's ID document images, applies the 15-30 age rule, and leaves
// the account in the pending verification state with the default voter role.
// Accounts are never deleted; audit retention keeps every record.
package registration
