// Package candidate manages the Chairperson and Kagawad candidate roster.
// Candidates referenced by ballots are never deleted, only archived.
package candidate
