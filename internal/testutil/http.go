package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/ckluximon/ubuntoo/internal/domain/models"
	"github.com/google/uuid"
)

// TestUser represents caller data for testing HTTP handlers.
type TestUser struct {
	ID       string
	Username string
	Email    string
	FullName string
}

// NewTestUser returns a TestUser with a fresh id.
func NewTestUser(username string) TestUser {
	return TestUser{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@test.com",
		FullName: "Test " + username,
	}
}

// FromUser converts a persisted user into a TestUser for request contexts.
func FromUser(u models.User) TestUser {
	return TestUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the bearer middleware and injects the principal
// directly.
func WithUser(r *http.Request, user TestUser) *http.Request {
	p := &auth.Principal{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}
	return auth.WithTestUser(r, p)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request with a JSON body.
func NewJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
