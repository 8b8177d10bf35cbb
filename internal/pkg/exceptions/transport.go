package exceptions

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// TransportError is the only error kind the FHIR client returns once a
// request has been attempted: network failures, timeouts, non-2xx statuses
// and undecodable bodies all arrive as a *TransportError.
type TransportError struct {
	// StatusCode is zero when no HTTP response was received.
	StatusCode int
	Message    string
	Method     string
	URL        string
	// Decode is set when the response arrived but its body was not a FHIR resource.
	Decode  bool
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("fhir %s %s: %s", e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("fhir %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// AsTransportError is errors.As for callers that only care about the status.
func AsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr, true
	}
	return nil, false
}

func ErrFHIRSendRequest(err error, method, url string) *TransportError {
	return &TransportError{
		Message: err.Error(),
		Method:  method,
		URL:     url,
		Timeout: isTimeout(err),
		Err:     err,
	}
}

func ErrFHIRUnexpectedStatus(statusCode int, message, method, url string) *TransportError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &TransportError{
		StatusCode: statusCode,
		Message:    message,
		Method:     method,
		URL:        url,
	}
}

func ErrFHIRDecodeResponse(err error, statusCode int, method, url string) *TransportError {
	return &TransportError{
		StatusCode: statusCode,
		Message:    err.Error(),
		Method:     method,
		URL:        url,
		Decode:     true,
		Err:        err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
