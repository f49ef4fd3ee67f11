// internal/app/system/apierr/apierr.go

// Package apierr defines the API error taxonomy and renders errors as JSON.
//
// Every handler failure maps to one of a small set of error kinds, each with a
// fixed HTTP status. Bodies have the shape {"detail": "<message>"} so clients
// can always surface a human-readable reason.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies an API error.
type Kind int

const (
	// KindInternal is an unexpected server-side failure (DB error, etc.).
	KindInternal Kind = iota
	// KindValidation is malformed input, rejected before any write.
	KindValidation
	// KindConflict is a duplicate email/username/vote/join.
	KindConflict
	// KindNotFound is an unknown entity id.
	KindNotFound
	// KindAuth is bad credentials or an invalid/expired/forged token.
	KindAuth
	// KindCapacity is a full challenge.
	KindCapacity
)

// Error is an API error with a stable HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error kind.
//
// Conflicts and capacity failures surface as 400 to match the public API
// contract; validation of request bodies uses 422.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict, KindCapacity:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Constructors for each kind.

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func Auth(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func Capacity(msg string) *Error   { return &Error{Kind: KindCapacity, Message: msg} }

// detailBody is the wire shape of every error response.
type detailBody struct {
	Detail string `json:"detail"`
}

// Write renders err to w. Known *Error values keep their kind's status and
// message. Anything else is logged and rendered as a 500 with a generic
// message so internal details never leak to callers.
func Write(w http.ResponseWriter, log *zap.Logger, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		if log != nil {
			log.Error("internal error", zap.Error(err))
		}
		apiErr = &Error{Kind: KindInternal, Message: "internal server error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status())
	_ = json.NewEncoder(w).Encode(detailBody{Detail: apiErr.Message})
}
