package http

type CreateCandidateRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Bio      string `json:"bio,omitempty"`
	Platform string `json:"platform,omitempty"`
}

type UpdateCandidateRequest struct {
	Name     *string `json:"name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Platform *string `json:"platform,omitempty"`
	Status   *string `json:"status,omitempty"`
}

type CandidateView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Bio      string `json:"bio,omitempty"`
	Platform string `json:"platform,omitempty"`
	PhotoRef string `json:"photo_ref,omitempty"`
	Status   string `json:"status"`
}

type CandidateListResponse struct {
	Candidates []CandidateView `json:"candidates"`
	Count      int             `json:"count"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
