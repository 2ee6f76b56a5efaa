package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/Amey8050/Dukaan-clone-sub000/pkg/auth"
	"github.com/Amey8050/Dukaan-clone-sub000/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "dukaan", ExpirationMinutes: 10}
}

func mintToken(t *testing.T, userID uuid.UUID, storeID *uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), userID, storeID)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsBadToken(t *testing.T) {
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsContext(t *testing.T) {
	userID := uuid.New()
	storeID := uuid.New()

	var gotUser, gotStore uuid.UUID
	handler := Auth(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserIDFromContext(r.Context())
		gotStore, _ = StoreIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, userID, &storeID))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotUser != userID {
		t.Fatalf("expected user %s got %s", userID, gotUser)
	}
	if gotStore != storeID {
		t.Fatalf("expected store %s got %s", storeID, gotStore)
	}
}

func TestShopperPrefersBearerOverSession(t *testing.T) {
	userID := uuid.New()

	var identityUser uuid.UUID
	var hadSession bool
	handler := Shopper(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identityUser, _ = UserIDFromContext(r.Context())
		_, hadSession = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, userID, nil))
	req.Header.Set("X-Session-Id", "guest-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if identityUser != userID {
		t.Fatalf("expected bearer identity to win")
	}
	if hadSession {
		t.Fatalf("session id must not be set for an authenticated caller")
	}
}

func TestShopperFallsBackToSessionHeader(t *testing.T) {
	var sessionID string
	handler := Shopper(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, _ = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", "guest-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if sessionID != "guest-1" {
		t.Fatalf("expected session identity, got %q", sessionID)
	}
}

func TestShopperRejectsInvalidBearer(t *testing.T) {
	handler := Shopper(testJWTConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestIdentityFromContext(t *testing.T) {
	userID := uuid.New()
	ctx := WithUserID(httptest.NewRequest(http.MethodGet, "/", nil).Context(), userID)
	identity := IdentityFromContext(ctx)
	if identity.UserID == nil || *identity.UserID != userID {
		t.Fatalf("expected user identity")
	}
	if identity.SessionID != nil {
		t.Fatalf("identity must carry exactly one side")
	}
}
