package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	verificationerrors "skvote/contexts/election-operations/verification-service/domain/errors"
	verificationhttp "skvote/contexts/election-operations/verification-service/transport/http"
)

func (s *Server) handleVerificationPending(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeVerificationError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	identity := s.resolveIdentity(r)
	resp, err := s.verification.Handler.PendingHandler(r.Context(), identity.AccountID)
	if err != nil {
		writeVerificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerificationStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.verification.Handler.StatusHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeVerificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerificationEligibility(w http.ResponseWriter, r *http.Request) {
	resp, err := s.verification.Handler.EligibilityHandler(r.Context(), r.PathValue("account_id"))
	if err != nil {
		writeVerificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerificationOpenReview(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeVerificationError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	identity := s.resolveIdentity(r)
	req := verificationhttp.OpenReviewRequest{AccountID: r.PathValue("account_id")}
	resp, err := s.verification.Handler.OpenReviewHandler(r.Context(), identity.AccountID, req)
	if err != nil {
		writeVerificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerificationSetStatus(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeVerificationError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	var req verificationhttp.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVerificationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.AccountID = r.PathValue("account_id")
	identity := s.resolveIdentity(r)
	resp, err := s.verification.Handler.SetStatusHandler(r.Context(), identity.AccountID, req)
	if err != nil {
		writeVerificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVerificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, verificationerrors.ErrInvalidRequest):
		writeVerificationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, verificationerrors.ErrUnauthorized):
		writeVerificationError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, verificationerrors.ErrAccountNotFound):
		writeVerificationError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, verificationerrors.ErrNotEligible):
		writeVerificationError(w, http.StatusUnprocessableEntity, "not_eligible", err.Error())
	case errors.Is(err, verificationerrors.ErrInvalidStateTransition):
		writeVerificationError(w, http.StatusConflict, "invalid_state_transition", err.Error())
	default:
		writeVerificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVerificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, verificationhttp.ErrorResponse{Code: code, Message: message})
}
