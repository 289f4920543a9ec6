package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	settingserrors "skvote/contexts/election-operations/election-settings/domain/errors"
	settingshttp "skvote/contexts/election-operations/election-settings/transport/http"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.settings.Handler.GetHandler(r.Context())
	if err != nil {
		writeSettingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpsertSettings(w http.ResponseWriter, r *http.Request) {
	if !hasBearer(r) {
		writeSettingsError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return
	}
	var req settingshttp.SettingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSettingsError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	identity := s.resolveIdentity(r)
	resp, err := s.settings.Handler.UpsertHandler(r.Context(), identity.AccountID, req)
	if err != nil {
		writeSettingsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSettingsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settingserrors.ErrInvalidRequest),
		errors.Is(err, settingserrors.ErrInvalidWindow):
		writeSettingsError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, settingserrors.ErrUnauthorized):
		writeSettingsError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeSettingsError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSettingsError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, settingshttp.ErrorResponse{Code: code, Message: message})
}
