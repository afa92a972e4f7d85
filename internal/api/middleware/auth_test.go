package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/finances", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub":  "maria@example.com",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, c := runAuth(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if c.Get("sub") != "maria@example.com" || c.Get("role") != "admin" {
		t.Fatalf("claims not injected: sub=%v role=%v", c.Get("sub"), c.Get("role"))
	}
}

func TestAuth_Unauthorized(t *testing.T) {
	withoutExp := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "maria@example.com", "role": "user",
	})
	expired := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "maria@example.com", "role": "user",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	// A zero token lifetime means the token is already expired when issued.
	zeroLifetime := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "maria@example.com", "role": "user",
		"exp": time.Now().Unix(),
	})
	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), jwt.MapClaims{
		"sub": "maria@example.com", "role": "user",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name, header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
		{"no expiry claim", "Bearer " + withoutExp},
		{"expired", "Bearer " + expired},
		{"zero lifetime", "Bearer " + zeroLifetime},
		{"wrong key", "Bearer " + wrongKey},
		{"unsigned algorithm", "Bearer " + unsignedToken(t)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := runAuth(t, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func unsignedToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "maria@example.com", "role": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
