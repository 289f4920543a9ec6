package http

type CastVoteRequest struct {
	ChairpersonID string   `json:"chairperson_id"`
	KagawadIDs    []string `json:"kagawad_ids"`
}

type CastVoteResponse struct {
	Success     bool   `json:"success"`
	BallotID    string `json:"ballot_id"`
	ReceiptCode string `json:"receipt_code"`
	CastAt      string `json:"cast_at"`
}

type BallotView struct {
	BallotID      string   `json:"ballot_id"`
	ChairpersonID string   `json:"chairperson_id"`
	KagawadIDs    []string `json:"kagawad_ids"`
	ReceiptCode   string   `json:"receipt_code"`
	CastAt        string   `json:"cast_at"`
}

type VoteStatusResponse struct {
	AccountID string      `json:"account_id"`
	HasVoted  bool        `json:"has_voted"`
	Ballot    *BallotView `json:"ballot,omitempty"`
}

type CandidateTallyView struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Votes       int64   `json:"votes"`
	Percentage  float64 `json:"percentage"`
	Elected     bool    `json:"elected"`
}

type ResultsResponse struct {
	Chairperson    []CandidateTallyView `json:"chairperson"`
	Kagawad        []CandidateTallyView `json:"kagawad"`
	TotalBallots   int64                `json:"total_ballots"`
	VerifiedVoters int64                `json:"verified_voters"`
	TurnoutPercent float64              `json:"turnout_percent"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
