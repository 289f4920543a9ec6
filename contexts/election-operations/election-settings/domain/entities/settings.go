package entities

import "time"

// Settings is the single election configuration record. Nil window bounds
// mean unbounded on that side.
type Settings struct {
	RegistrationStart  *time.Time
	RegistrationEnd    *time.Time
	VotingStart        *time.Time
	VotingEnd          *time.Time
	EnableRegistration bool
	EnableVoting       bool
	ShowResults        bool
	UpdatedBy          string
	UpdatedAt          time.Time
}

// Defaults apply when no record has been saved yet: both windows open,
// results hidden until an administrator enables them.
func Defaults() Settings {
	return Settings{
		EnableRegistration: true,
		EnableVoting:       true,
		ShowResults:        false,
	}
}

func (s Settings) RegistrationOpen(now time.Time) bool {
	return s.EnableRegistration && windowContains(s.RegistrationStart, s.RegistrationEnd, now)
}

func (s Settings) VotingOpen(now time.Time) bool {
	return s.EnableVoting && windowContains(s.VotingStart, s.VotingEnd, now)
}

func windowContains(start *time.Time, end *time.Time, now time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(*end) {
		return false
	}
	return true
}
