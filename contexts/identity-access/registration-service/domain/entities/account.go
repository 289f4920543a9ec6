package entities

import "time"

type VerificationStatus string

const (
	VerificationStatusPending   VerificationStatus = "pending"
	VerificationStatusVerifying VerificationStatus = "verifying"
	VerificationStatusVerified  VerificationStatus = "verified"
	VerificationStatusRejected  VerificationStatus = "rejected"
)

// Account is the identity record created at registration. Verification status
// and the voted flag are mutated only by the verification and voting modules.
type Account struct {
	AccountID           string
	Name                string
	Email               string
	PasswordHash        string
	PhoneNumber         string
	BirthDate           time.Time
	Address             string
	City                string
	Province            string
	Barangay            string
	IDType              string
	IDFrontRef          string
	IDBackRef           string
	VerificationStatus  VerificationStatus
	VerificationMessage string
	HasVoted            bool
	CreatedAt           time.Time
}

// AgeAt computes completed years between the birth date and a reference time.
func AgeAt(birthDate time.Time, at time.Time) int {
	age := at.Year() - birthDate.Year()
	anniversary := time.Date(at.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	if at.Before(anniversary) {
		age--
	}
	return age
}

// Eligible reports whether an age satisfies the Sangguniang Kabataan voter
// bracket, 15 to 30 inclusive.
func Eligible(age int) bool {
	return age >= 15 && age <= 30
}
