package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/shandysiswandi/otpgate/internal/pkg/result"
)

const maxBodyBytes = 64 * 1024

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	*http.Request
}

// GetParam reads a path parameter stored by httprouter.
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// DecodeBody decodes a single JSON object into dst, rejecting unknown fields
// and trailing data. A malformed body is reported as a ValidationFailed
// result error keyed "body".
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return invalidBody()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return invalidBody()
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return invalidBody()
	}

	return nil
}

func invalidBody() error {
	return result.ValidationFailed[result.None](result.ValidationError{
		Key:     "body",
		Message: "Invalid request body.",
	}).Err()
}
