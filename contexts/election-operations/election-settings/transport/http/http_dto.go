package http

type SettingsPayload struct {
	RegistrationStart  *string `json:"registration_start,omitempty"`
	RegistrationEnd    *string `json:"registration_end,omitempty"`
	VotingStart        *string `json:"voting_start,omitempty"`
	VotingEnd          *string `json:"voting_end,omitempty"`
	EnableRegistration bool    `json:"enable_registration"`
	EnableVoting       bool    `json:"enable_voting"`
	ShowResults        bool    `json:"show_results"`
}

type SettingsResponse struct {
	SettingsPayload
	UpdatedBy string `json:"updated_by,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
