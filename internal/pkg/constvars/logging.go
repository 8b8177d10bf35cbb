package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingMethodKey       = "method"
	LoggingEndpointKey     = "endpoint"
	LoggingURLKey          = "url"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingOperationKey    = "operation"
	LoggingErrorTypeKey    = "error_type"
	LoggingResourceTypeKey = "resource_type"
	LoggingPatientIDKey    = "patient_id"
	LoggingEntryCountKey   = "entry_count"
)
