package httpserver

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	registrationapp "skvote/contexts/identity-access/registration-service/application"
	registrationerrors "skvote/contexts/identity-access/registration-service/domain/errors"
	registrationhttp "skvote/contexts/identity-access/registration-service/transport/http"
	sessionerrors "skvote/contexts/identity-access/session-service/domain/errors"
	sessionhttp "skvote/contexts/identity-access/session-service/transport/http"
)

const maxRegisterFormBytes = 20 << 20

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.session.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.logger.Warn("login rejected",
			"event", "http_login_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"client_ip", resolveClientIP(r),
		)
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRegisterFormBytes); err != nil {
		writeRegistrationError(w, http.StatusBadRequest, "invalid_form", "request must be multipart form data")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	birthDate, err := parseBirthDate(r.FormValue("birth_date"))
	if err != nil {
		writeRegistrationError(w, http.StatusBadRequest, "invalid_birth_date", "birth_date must be YYYY-MM-DD")
		return
	}

	cmd := registrationapp.RegisterCommand{
		FirstName:   r.FormValue("first_name"),
		LastName:    r.FormValue("last_name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		PhoneNumber: r.FormValue("phone_number"),
		BirthDate:   birthDate,
		Address:     r.FormValue("address"),
		City:        r.FormValue("city"),
		Province:    r.FormValue("province"),
		Barangay:    r.FormValue("barangay"),
		IDType:      r.FormValue("id_type"),
	}

	front, frontHeader, err := r.FormFile("id_front")
	if err == nil {
		defer front.Close()
		cmd.IDFront = toDocumentUpload(front, frontHeader)
	}
	back, backHeader, err := r.FormFile("id_back")
	if err == nil {
		defer back.Close()
		cmd.IDBack = toDocumentUpload(back, backHeader)
	}

	resp, err := s.registration.Handler.RegisterHandler(r.Context(), cmd)
	if err != nil {
		writeRegistrationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func parseBirthDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

func toDocumentUpload(file multipart.File, header *multipart.FileHeader) *registrationapp.DocumentUpload {
	contentType := ""
	fileName := ""
	if header != nil {
		contentType = header.Header.Get("Content-Type")
		fileName = header.Filename
	}
	return &registrationapp.DocumentUpload{
		FileName:    fileName,
		ContentType: contentType,
		Body:        file,
	}
}

func writeSessionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrInvalidRequest):
		writeSessionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, sessionerrors.ErrInvalidCredentials):
		writeSessionError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, sessionerrors.ErrTokenInvalid),
		errors.Is(err, sessionerrors.ErrTokenExpired):
		writeSessionError(w, http.StatusUnauthorized, "invalid_token", err.Error())
	default:
		writeSessionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistrationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registrationerrors.ErrInvalidRequest):
		writeRegistrationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, registrationerrors.ErrMissingDocument):
		writeRegistrationError(w, http.StatusBadRequest, "missing_document", err.Error())
	case errors.Is(err, registrationerrors.ErrNotEligible):
		writeRegistrationError(w, http.StatusUnprocessableEntity, "not_eligible", err.Error())
	case errors.Is(err, registrationerrors.ErrRegistrationClosed):
		writeRegistrationError(w, http.StatusForbidden, "registration_closed", err.Error())
	case errors.Is(err, registrationerrors.ErrEmailTaken):
		writeRegistrationError(w, http.StatusConflict, "email_taken", err.Error())
	default:
		writeRegistrationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSessionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sessionhttp.ErrorResponse{Code: code, Message: message})
}

func writeRegistrationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registrationhttp.ErrorResponse{Code: code, Message: message})
}
