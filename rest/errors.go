package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call. The classification happens exactly
// once, here; callers branch on the Kind and never re-inspect transport
// errors.
type Kind int

const (
	// KindNotFound: the backend answered 404. Recoverable - reads degrade
	// to an absent result instead of an error.
	KindNotFound Kind = iota
	// KindServer: the backend answered with any other non-2xx status.
	KindServer
	// KindUnreachable: the request went out but no response came back
	// (connection refused, timeout, broken body).
	KindUnreachable
	// KindClient: the request could not even be constructed or sent.
	KindClient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server_error"
	case KindUnreachable:
		return "unreachable"
	default:
		return "client_error"
	}
}

// APIError is the tagged error produced by the classifier for every failed
// backend call.
type APIError struct {
	Kind       Kind
	Status     int    // HTTP status code, when a response was received
	StatusText string // status text matching Status
	Err        error  // underlying transport error, when no response came back
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("api error: %d %s", e.Status, e.StatusText)
	case KindServer:
		return fmt.Sprintf("api error: %d %s", e.Status, e.StatusText)
	case KindUnreachable:
		return "api error: no response received from server"
	default:
		return fmt.Sprintf("api error: %v", e.Err)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a classified "resource absent" failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNotFound
}

// statusError classifies a non-2xx response.
func statusError(status int) *APIError {
	kind := KindServer
	if status == http.StatusNotFound {
		kind = KindNotFound
	}
	return &APIError{
		Kind:       kind,
		Status:     status,
		StatusText: http.StatusText(status),
	}
}

// unreachableError classifies a request that got no response.
func unreachableError(err error) *APIError {
	return &APIError{Kind: KindUnreachable, Err: err}
}

// requestError classifies a request that could not be built or sent.
func requestError(err error) *APIError {
	return &APIError{Kind: KindClient, Err: err}
}
