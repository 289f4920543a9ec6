package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	candidateerrors "skvote/contexts/election-operations/candidate-service/domain/errors"
	candidatehttp "skvote/contexts/election-operations/candidate-service/transport/http"
)

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	resp, err := s.candidates.Handler.ListActiveHandler(r.Context(), r.URL.Query().Get("position"))
	if err != nil {
		writeCandidateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeCandidateError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	var req candidatehttp.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCandidateError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	identity := s.resolveIdentity(r)
	resp, err := s.candidates.Handler.CreateHandler(r.Context(), identity.AccountID, req)
	if err != nil {
		writeCandidateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeCandidateError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	var req candidatehttp.UpdateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCandidateError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	identity := s.resolveIdentity(r)
	resp, err := s.candidates.Handler.UpdateHandler(r.Context(), identity.AccountID, r.PathValue("candidate_id"), req)
	if err != nil {
		writeCandidateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeCandidateDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, candidateerrors.ErrInvalidRequest):
		writeCandidateError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, candidateerrors.ErrInvalidPosition):
		writeCandidateError(w, http.StatusUnprocessableEntity, "invalid_position", err.Error())
	case errors.Is(err, candidateerrors.ErrUnauthorized):
		writeCandidateError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, candidateerrors.ErrCandidateNotFound):
		writeCandidateError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeCandidateError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCandidateError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, candidatehttp.ErrorResponse{Code: code, Message: message})
}
