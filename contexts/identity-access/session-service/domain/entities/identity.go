package entities

import "time"

// Identity is the resolved caller: the only source of truth for
// authorization decisions.
type Identity struct {
	AccountID string
	Roles     []string
}

// Anonymous is the zero identity used for unresolvable callers.
func Anonymous() Identity {
	return Identity{}
}

func (i Identity) IsAnonymous() bool {
	return i.AccountID == ""
}

// Credential is the stored login material for one account.
type Credential struct {
	AccountID    string
	Email        string
	Name         string
	PasswordHash string
}

// Session is an issued login token with its expiry.
type Session struct {
	Token     string
	AccountID string
	Name      string
	Roles     []string
	ExpiresAt time.Time
}
