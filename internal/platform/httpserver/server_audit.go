package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	auditerrors "skvote/contexts/election-operations/audit-service/domain/errors"
	audithttp "skvote/contexts/election-operations/audit-service/transport/http"
)

func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeAuditError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	query := r.URL.Query()
	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeAuditError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}
	identity := s.resolveIdentity(r)
	resp, err := s.audit.Handler.ListHandler(r.Context(), identity.AccountID, query.Get("action"), limit)
	if err != nil {
		writeAuditDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAuditDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auditerrors.ErrInvalidRequest):
		writeAuditError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, auditerrors.ErrUnauthorized):
		writeAuditError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeAuditError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuditError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, audithttp.ErrorResponse{Code: code, Message: message})
}
