package queue

import (
	"fmt"

	"github.com/juju/errors"
)

const (
	// ErrInvalidURI is delivered when a request target is not an absolute
	// http(s) URI.
	ErrInvalidURI = errors.ConstError("not a valid URI")

	// ErrInvalidRequest is delivered when a request cannot be built for a
	// reason other than its URI, such as an invalid method.
	ErrInvalidRequest = errors.ConstError("invalid request")

	// ErrSubmitterClosed is delivered when Submit is called on a handle
	// that has already been closed.
	ErrSubmitterClosed = errors.ConstError("submitter closed")
)

// HTTPError is delivered when the server answered with anything but 200 OK.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error. status code %d", e.StatusCode)
}

// TransportError is delivered when the HTTP client failed to obtain or read
// a response (connection, TLS handshake, I/O).
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "error in http client: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// IsHTTPError reports whether err is an HTTPError and returns its status code.
func IsHTTPError(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// IsTransportError reports whether err is a TransportError.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
