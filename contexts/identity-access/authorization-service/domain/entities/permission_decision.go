package entities

import "time"

// PermissionDecision is the result of a single permission evaluation.
type PermissionDecision struct {
	AccountID  string    `json:"account_id"`
	Permission string    `json:"permission"`
	Allowed    bool      `json:"allowed"`
	Reason     string    `json:"reason"`
	CheckedAt  time.Time `json:"checked_at"`
}
