package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/itaoit/itstock-backend/pkg/auth"
	"github.com/itaoit/itstock-backend/pkg/config"
	"github.com/itaoit/itstock-backend/pkg/enums"
)

var testJWTCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "itstock-test",
	ExpirationMinutes: 5,
}

func mintTestToken(t *testing.T) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTCfg, time.Now(), pkgauth.AccessTokenPayload{
		Username:    "somchai",
		DisplayName: "Somchai J.",
		Role:        enums.RoleStaff,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(testJWTCfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	handler := Auth(testJWTCfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsTamperedToken(t *testing.T) {
	handler := Auth(testJWTCfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t)+"x")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSeedsIdentityContext(t *testing.T) {
	var gotUsername, gotRole string
	handler := Auth(testJWTCfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername = UsernameFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUsername != "somchai" || gotRole != "staff" {
		t.Fatalf("unexpected identity: %s / %s", gotUsername, gotRole)
	}
}
