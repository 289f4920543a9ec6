// Package session implements the identity gate inside the identity-access
// context.
//
// It exchanges credentials for signed tokens and resolves inbound tokens to a
// durable account id plus the account's current role set. An unresolvable or
// expired token resolves to the anonymous identity rather than an error, so
// every downstream permission check uniformly denies. Client-supplied role
// claims are never trusted; roles are re-read from storage on every resolve.
package session
