package entities

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusVerifying Status = "verifying"
	StatusVerified  Status = "verified"
	StatusRejected  Status = "rejected"
)

func (s Status) Terminal() bool {
	return s == StatusVerified || s == StatusRejected
}

// VoterRecord is the verification view of an account.
type VoterRecord struct {
	AccountID string
	Name      string
	Email     string
	BirthDate time.Time
	Barangay  string
	City      string
	Status    Status
	Message   string
	HasVoted  bool
	CreatedAt time.Time
}

// Age computes completed years at the reference time.
func (v VoterRecord) Age(at time.Time) int {
	age := at.Year() - v.BirthDate.Year()
	anniversary := time.Date(at.Year(), v.BirthDate.Month(), v.BirthDate.Day(), 0, 0, 0, 0, time.UTC)
	if at.Before(anniversary) {
		age--
	}
	return age
}

// AgeEligible reports the 15-30 inclusive voter bracket.
func AgeEligible(age int) bool {
	return age >= 15 && age <= 30
}
