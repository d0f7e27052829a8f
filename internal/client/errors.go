package client

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports that the backend could not be reached: dial, DNS,
// TLS, timeout or a broken response body.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports that the backend answered but did not deliver a
// snapshot: a non-2xx status, success=false, or a malformed envelope.
// StatusCode is the HTTP status (2xx for envelope failures).
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode >= 300) {
		return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Message)
	}
	return "server error: " + e.Message
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsServerError reports whether err is or wraps a *ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}

// statusMessage extracts a readable message from an error response body,
// preferring the envelope's message field over the raw body.
func statusMessage(code int, body []byte) string {
	if env, err := decodeEnvelope(body); err == nil {
		if msg := env.message(); msg != "" {
			return msg
		}
	}
	if len(body) == 0 {
		return httpStatusText(code)
	}
	return truncate(body, 200)
}

// httpStatusText is used when neither body nor envelope says anything.
func httpStatusText(code int) string {
	if txt := http.StatusText(code); txt != "" {
		return txt
	}
	return "unknown status"
}
