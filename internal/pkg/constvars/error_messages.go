package constvars

const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the server took too long to respond"
	ErrClientResourceNotFound              = "the requested record could not be found"
	ErrClientFHIRServerUnavailable         = "the clinical data server is unavailable, please try again later"
	ErrClientInvalidQuery                  = "invalid query parameters"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientInvalidPatientID              = "invalid patient id"
)

const (
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevServerDeadlineExceeded = "deadline exceeded while waiting for the FHIR server"
	ErrDevCannotMarshalJSON      = "failed to marshal JSON"
	ErrDevValidationFailed       = "query validation failed"
	ErrDevMissingRequestID       = "request id missing from context"
	ErrDevTooManyRequests        = "rate limit exceeded"
	ErrDevInvalidPatientID       = "patient id path parameter is not a FHIR id"

	ErrDevFHIRUnsupportedMethod    = "unsupported FHIR request method %s"
	ErrDevFHIRMissingResourceType  = "FHIR resource has no resourceType"
	ErrDevFHIRMissingResourceID    = "FHIR resource id is empty"
	ErrDevFHIRResponseNotResource  = "FHIR %s %s response lacks resourceType"
	ErrDevFHIRResponseNotBundle    = "FHIR %s %s response is %s, not Bundle"
	ErrDevFHIRResponseEmpty        = "FHIR %s %s returned status %d with an empty body"
	ErrDevFHIRInvalidConfiguration = "invalid FHIR client configuration"
	ErrDevFHIRResourceTypeMismatch = "FHIR resource type does not match the endpoint"
)
