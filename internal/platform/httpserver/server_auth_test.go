package httpserver

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	registrationhttp "skvote/contexts/identity-access/registration-service/transport/http"
	sessionhttp "skvote/contexts/identity-access/session-service/transport/http"
)

func TestLoginOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.mintToken(t, "acct-1", "voter") // seeds the credential

	rec := env.do(t, http.MethodPost, "/api/auth/v1/login", "", sessionhttp.LoginRequest{
		Email:    "acct-1@example.com",
		Password: "password",
	})
	requireStatus(t, rec, http.StatusOK)
	resp := decodeBody[sessionhttp.LoginResponse](t, rec)
	if resp.Token == "" || resp.AccountID != "acct-1" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
}

func TestLoginRejectedOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.mintToken(t, "acct-1", "voter")

	rec := env.do(t, http.MethodPost, "/api/auth/v1/login", "", sessionhttp.LoginRequest{
		Email:    "acct-1@example.com",
		Password: "wrong",
	})
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestLoginMalformedBodyIs400(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/v1/login", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	requireStatus(t, rec, http.StatusBadRequest)
}

func registerForm(t *testing.T, birthDate string, withDocuments bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"first_name":   "Maria",
		"last_name":    "Santos",
		"email":        "maria@example.com",
		"password":     "str0ng-password",
		"phone_number": "+639171234567",
		"birth_date":   birthDate,
		"address":      "123 Mabini St",
		"city":         "Quezon City",
		"province":     "Metro Manila",
		"barangay":     "Commonwealth",
		"id_type":      "school_id",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if withDocuments {
		for _, name := range []string{"id_front", "id_back"} {
			part, err := writer.CreateFormFile(name, name+".jpg")
			if err != nil {
				t.Fatalf("create file %s: %v", name, err)
			}
			if _, err := part.Write([]byte("image-bytes")); err != nil {
				t.Fatalf("write file %s: %v", name, err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestRegisterOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	birthDate := time.Now().UTC().AddDate(-18, 0, 0).Format("2006-01-02")
	body, contentType := registerForm(t, birthDate, true)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/v1/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	requireStatus(t, rec, http.StatusCreated)

	resp := decodeBody[registrationhttp.RegisterResponse](t, rec)
	if !resp.Success || resp.VerificationStatus != "pending" {
		t.Fatalf("unexpected register response: %+v", resp)
	}
}

func TestRegisterUnderageIs422(t *testing.T) {
	env := newTestEnv(t)
	birthDate := time.Now().UTC().AddDate(-14, 0, 0).Format("2006-01-02")
	body, contentType := registerForm(t, birthDate, true)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/v1/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	requireStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestRegisterMissingDocumentsIs400(t *testing.T) {
	env := newTestEnv(t)
	birthDate := time.Now().UTC().AddDate(-18, 0, 0).Format("2006-01-02")
	body, contentType := registerForm(t, birthDate, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/v1/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	requireStatus(t, rec, http.StatusBadRequest)
}
