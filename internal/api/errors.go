package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/evalio-app/evalio-cli/internal/domain"
)

type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindServer
	KindNotFound
	KindUnauthorized
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is a failed backend call, classified so callers can branch on the
// failure kind without string matching.
type Error struct {
	Kind   ErrorKind
	Status int
	Detail string
	err    error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.Status, e.Detail)
	}
	if e.err != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindNotFound:
		return domain.ErrChatNotFound
	case KindUnauthorized:
		return domain.ErrUnauthorized
	}
	return e.err
}

// IsNotFound reports whether err is a backend not-found failure.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, err: err}
}

// statusError maps an HTTP error response to a classified Error, pulling
// the human-readable detail out of the FastAPI-style body.
func statusError(status int, body []byte) *Error {
	e := &Error{Status: status, Detail: parseDetail(body)}
	switch {
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindUnauthorized
	case status == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
	default:
		e.Kind = KindServer
	}
	return e
}

// parseDetail extracts the backend's detail message. The field is either a
// plain string or, on validation failures, a list of {msg} objects.
func parseDetail(body []byte) string {
	var withDetail struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &withDetail); err != nil || len(withDetail.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(withDetail.Detail, &detail); err == nil {
		return detail
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(withDetail.Detail, &items); err == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}
