// Package authorization implements the role/permission model inside the
// identity-access context.
//
// Roles are static configuration: a named bundle of permission strings seeded
// at bootstrap. The module owns role assignment to accounts, effective
// permission resolution, and the deny-by-default permission check every
// privileged operation in the election core goes through.
package authorization
