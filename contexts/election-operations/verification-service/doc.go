// Package verification implements the voter verification state machine
// inside the election-operations context.
//
// A voter record moves pending -> verifying -> verified | rejected. Terminal
// states are immutable; a rejected applicant must re-register. Transitions
// require the verify:voters permission, are audited, and emit notification
// events through the outbox. Concurrent verify/reject calls on the same
// account resolve to exactly one terminal state.
package verification
