package exceptions_test

import (
	"context"
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportError_Error(t *testing.T) {
	statusErr := exceptions.ErrFHIRUnexpectedStatus(http.StatusNotFound, "", http.MethodGet, "http://fhir/Patient/1")
	assert.Equal(t, "Not Found", statusErr.Message)
	assert.Equal(t, "fhir GET http://fhir/Patient/1: status 404: Not Found", statusErr.Error())
	assert.True(t, statusErr.NotFound())

	sendErr := exceptions.ErrFHIRSendRequest(errors.New("connection refused"), http.MethodGet, "http://fhir/Patient/1")
	assert.Equal(t, "fhir GET http://fhir/Patient/1: connection refused", sendErr.Error())
	assert.Zero(t, sendErr.StatusCode)
	assert.False(t, sendErr.Timeout)
}

func TestTransportError_Unwrap(t *testing.T) {
	sendErr := exceptions.ErrFHIRSendRequest(fmt.Errorf("dial: %w", context.DeadlineExceeded), http.MethodGet, "http://fhir/Patient/1")

	assert.True(t, sendErr.Timeout)
	assert.ErrorIs(t, sendErr, context.DeadlineExceeded)

	wrapped := fmt.Errorf("loading overview: %w", sendErr)
	transportErr, ok := exceptions.AsTransportError(wrapped)
	require.True(t, ok)
	assert.Same(t, sendErr, transportErr)

	_, ok = exceptions.AsTransportError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrFHIRDecodeResponse(t *testing.T) {
	decodeErr := exceptions.ErrFHIRDecodeResponse(errors.New("unexpected end of JSON input"), http.StatusOK, http.MethodGet, "http://fhir/Patient")

	assert.True(t, decodeErr.Decode)
	assert.Equal(t, http.StatusOK, decodeErr.StatusCode)
	assert.Contains(t, decodeErr.Error(), "unexpected end of JSON input")
}

func TestFromError(t *testing.T) {
	cases := []struct {
		name          string
		err           error
		statusCode    int
		clientMessage string
	}{
		{
			name:          "FHIR Not Found",
			err:           exceptions.ErrFHIRUnexpectedStatus(http.StatusNotFound, "gone", http.MethodGet, "u"),
			statusCode:    http.StatusNotFound,
			clientMessage: constvars.ErrClientResourceNotFound,
		},
		{
			name:          "FHIR Server Error",
			err:           exceptions.ErrFHIRUnexpectedStatus(http.StatusInternalServerError, "", http.MethodGet, "u"),
			statusCode:    http.StatusBadGateway,
			clientMessage: constvars.ErrClientFHIRServerUnavailable,
		},
		{
			name:          "FHIR Bad Request",
			err:           exceptions.ErrFHIRUnexpectedStatus(http.StatusBadRequest, "bad param", http.MethodGet, "u"),
			statusCode:    http.StatusBadGateway,
			clientMessage: constvars.ErrClientFHIRServerUnavailable,
		},
		{
			name:          "FHIR Network Failure",
			err:           exceptions.ErrFHIRSendRequest(errors.New("connection refused"), http.MethodGet, "u"),
			statusCode:    http.StatusBadGateway,
			clientMessage: constvars.ErrClientFHIRServerUnavailable,
		},
		{
			name:          "FHIR Timeout",
			err:           exceptions.ErrFHIRSendRequest(context.DeadlineExceeded, http.MethodGet, "u"),
			statusCode:    http.StatusGatewayTimeout,
			clientMessage: constvars.ErrClientServerLongRespond,
		},
		{
			name:          "FHIR Decode Failure",
			err:           exceptions.ErrFHIRDecodeResponse(errors.New("bad json"), http.StatusOK, http.MethodGet, "u"),
			statusCode:    http.StatusBadGateway,
			clientMessage: constvars.ErrClientFHIRServerUnavailable,
		},
		{
			name:          "Request Deadline",
			err:           fmt.Errorf("overview: %w", context.DeadlineExceeded),
			statusCode:    http.StatusGatewayTimeout,
			clientMessage: constvars.ErrClientServerLongRespond,
		},
		{
			name:          "Unknown",
			err:           errors.New("boom"),
			statusCode:    http.StatusInternalServerError,
			clientMessage: constvars.ErrClientCannotProcessRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customErr := exceptions.FromError(tc.err)

			assert.Equal(t, tc.statusCode, customErr.StatusCode)
			assert.Equal(t, tc.clientMessage, customErr.ClientMessage)
			assert.ErrorIs(t, customErr, tc.err)
		})
	}
}

func TestFromError_KeepsCustomError(t *testing.T) {
	original := exceptions.ErrInvalidPatientID(errors.New("bad id"))
	wrapped := fmt.Errorf("controller: %w", original)

	assert.Same(t, original, exceptions.FromError(wrapped))
	assert.Equal(t, http.StatusBadRequest, original.StatusCode)
}

func TestBuildNewCustomError_RecordsCaller(t *testing.T) {
	customErr := exceptions.ErrServerProcess(errors.New("boom"))

	assert.True(t, strings.HasSuffix(customErr.Location.File, "exceptions_test.go"), customErr.Location.File)
	assert.Contains(t, customErr.DevMessage, "boom")
	assert.Contains(t, customErr.Error(), "exceptions_test.go")
}
