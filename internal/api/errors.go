package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FieldError is a single entry of a validation failure body
type FieldError struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// APIError is a non-2xx response decoded into the server's error shape.
// The server reports errors as {"detail": "..."} for plain failures or
// {"detail": [{loc, msg, type}, ...]} for validation failures.
type APIError struct {
	Status string
	Code   int
	Detail string
	Fields []FieldError
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.Fields) > 0 {
		msgs := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			msgs[i] = f.Msg
		}
		return strings.Join(msgs, ", ")
	}
	return e.Status
}

// decodeError extracts the error detail from a non-2xx response body
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.Status, Code: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return apiErr
	}

	// Detail is either a bare string or an array of field errors
	if err := json.Unmarshal(envelope.Detail, &apiErr.Detail); err != nil {
		if err := json.Unmarshal(envelope.Detail, &apiErr.Fields); err != nil {
			apiErr.Detail = fmt.Sprintf("unexpected error body (%s)", resp.Status)
		}
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 response
func IsUnauthorized(err error) bool {
	return statusIs(err, http.StatusUnauthorized)
}

func statusIs(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
