package http

type RegisterResponse struct {
	Success            bool   `json:"success"`
	AccountID          string `json:"account_id"`
	VerificationStatus string `json:"verification_status"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
