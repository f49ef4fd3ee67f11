// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON request/response helpers shared by all
// feature handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodySize caps request bodies to prevent memory exhaustion from
// oversized requests.
const MaxBodySize = 1 << 20 // 1 MB

// Decode reads the request body as JSON into dst. The body is capped at
// MaxBodySize and unknown fields are tolerated (clients may send extra
// display-only fields).
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, MaxBodySize)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// Write encodes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
