package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnauthorized     = errors.New("caller is not authorized")
	ErrVotingClosed     = errors.New("voting is closed")
	ErrNotEligible      = errors.New("account is not eligible to vote")
	ErrAlreadyVoted     = errors.New("account has already voted")
	ErrInvalidCandidate = errors.New("invalid candidate selection")
	ErrBallotNotFound   = errors.New("ballot not found")
	ErrResultsHidden    = errors.New("results are not visible")
)
