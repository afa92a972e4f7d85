package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/finances", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrEmailTaken, http.StatusBadRequest, "email already registered"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			rec, body := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			if body.Error != tc.msg {
				t.Fatalf("message = %q, want %q", body.Error, tc.msg)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("find account"), domain.ErrUserNotFound)
	rec, _ := renderError(t, wrapped)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestErrorHandler_EchoError(t *testing.T) {
	rec, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if body.Error != "invalid token" {
		t.Fatalf("message = %q", body.Error)
	}
}

// Internal details must not reach the client.
func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := renderError(t, errors.New("mongo: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("message = %q", body.Error)
	}
}
