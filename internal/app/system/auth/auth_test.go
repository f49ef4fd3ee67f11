package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubFetcher struct {
	known map[string]*Principal
}

func (f *stubFetcher) FetchPrincipal(_ context.Context, userID string) *Principal {
	return f.known[userID]
}

func newMiddlewareFixture(t *testing.T) (*TokenIssuer, http.Handler) {
	t.Helper()
	issuer, err := NewTokenIssuer(testKey, time.Hour, nil)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	fetcher := &stubFetcher{known: map[string]*Principal{
		"user-1": {ID: "user-1", Username: "alice"},
	}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := CurrentUser(r)
		if !ok {
			t.Error("principal missing inside protected handler")
			return
		}
		w.Write([]byte(p.Username))
	})
	return issuer, RequireBearer(issuer, fetcher, nil)(inner)
}

func TestRequireBearerAllowsValidToken(t *testing.T) {
	issuer, protected := newMiddlewareFixture(t)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if rec.Body.String() != "alice" {
		t.Errorf("principal: got %q", rec.Body.String())
	}
}

func TestRequireBearerRejectsMissingHeader(t *testing.T) {
	_, protected := newMiddlewareFixture(t)

	req := httptest.NewRequest("GET", "/users/me", nil)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireBearerRejectsWrongScheme(t *testing.T) {
	_, protected := newMiddlewareFixture(t)

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireBearerRejectsBadToken(t *testing.T) {
	_, protected := newMiddlewareFixture(t)

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireBearerRejectsUnknownSubject(t *testing.T) {
	issuer, protected := newMiddlewareFixture(t)

	// Valid token for a user the directory no longer knows.
	token, err := issuer.Issue("deleted-user")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestBearerTokenCaseInsensitiveScheme(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "bearer abc123")
	if got := bearerToken(req); got != "abc123" {
		t.Errorf("bearerToken: got %q", got)
	}
}
