package exceptions

import (
	"context"
	"ember-emr-service/internal/pkg/constvars"
	"errors"
	"fmt"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrInvalidQuery = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidQuery, constvars.ErrDevValidationFailed)
	}
	ErrInvalidPatientID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidPatientID, constvars.ErrDevInvalidPatientID)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevTooManyRequests)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}

	// FHIR
	ErrFHIRUnsupportedMethod = func(method string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevFHIRUnsupportedMethod, method))
	}
	ErrFHIRMissingResourceType = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevFHIRMissingResourceType)
	}
	ErrFHIRMissingResourceID = func() *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevFHIRMissingResourceID)
	}
	ErrFHIRResourceTypeMismatch = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevFHIRResourceTypeMismatch)
	}
	ErrFHIRInvalidConfiguration = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFHIRInvalidConfiguration)
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
)

// FromError converts any usecase error into the response error. FHIR 404s
// stay 404, timeouts become 504 and every other FHIR failure becomes 502.
func FromError(err error) *CustomError {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	if transportErr, ok := AsTransportError(err); ok {
		switch {
		case transportErr.NotFound():
			return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, transportErr.Message)
		case transportErr.Timeout:
			return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
		default:
			return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientFHIRServerUnavailable, transportErr.Message)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrServerDeadlineExceeded(err)
	}
	return ErrServerProcess(err)
}
