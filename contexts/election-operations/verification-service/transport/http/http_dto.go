package http

type OpenReviewRequest struct {
	AccountID string `json:"account_id"`
}

type SetStatusRequest struct {
	AccountID string `json:"account_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

type StatusChangeResponse struct {
	Success   bool   `json:"success"`
	AccountID string `json:"account_id"`
	Status    string `json:"status"`
}

type EligibilityResponse struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Barangay  string `json:"barangay"`
	City      string `json:"city"`
	Age       int    `json:"age"`
	Status    string `json:"status"`
	HasVoted  bool   `json:"has_voted"`
	Eligible  bool   `json:"eligible"`
}

type StatusResponse struct {
	AccountID string `json:"account_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

type PendingListResponse struct {
	Voters []EligibilityResponse `json:"voters"`
	Count  int                   `json:"count"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
