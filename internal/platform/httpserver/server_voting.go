package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	votingerrors "skvote/contexts/election-operations/voting-engine/domain/errors"
	votinghttp "skvote/contexts/election-operations/voting-engine/transport/http"
)

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeVotingError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeVotingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	identity := s.resolveIdentity(r)
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), identity.AccountID, req)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleVoteStatus(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeVotingError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	identity := s.resolveIdentity(r)
	resp, err := s.voting.Handler.VoteStatusHandler(r.Context(), identity.AccountID, r.PathValue("account_id"))
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	identity := s.resolveIdentity(r)
	resp, err := s.voting.Handler.ResultsHandler(r.Context(), identity.AccountID)
	if err != nil {
		writeVotingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeVotingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votingerrors.ErrInvalidRequest):
		writeVotingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, votingerrors.ErrUnauthorized):
		writeVotingError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, votingerrors.ErrVotingClosed):
		writeVotingError(w, http.StatusForbidden, "voting_closed", err.Error())
	case errors.Is(err, votingerrors.ErrNotEligible):
		writeVotingError(w, http.StatusUnprocessableEntity, "not_eligible", err.Error())
	case errors.Is(err, votingerrors.ErrAlreadyVoted):
		writeVotingError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, votingerrors.ErrInvalidCandidate):
		writeVotingError(w, http.StatusUnprocessableEntity, "invalid_candidate", err.Error())
	case errors.Is(err, votingerrors.ErrBallotNotFound):
		writeVotingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, votingerrors.ErrResultsHidden):
		writeVotingError(w, http.StatusForbidden, "results_hidden", err.Error())
	default:
		writeVotingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeVotingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, votinghttp.ErrorResponse{Code: code, Message: message})
}
