package utils

import (
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/dto/responses"
	"ember-emr-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// BuildErrorResponse renders err as a CustomError. Transport failures from
// the FHIR server are mapped to gateway statuses; dev details are only
// exposed outside production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	customErr := exceptions.FromError(err)

	log.Error(customErr.DevMessage,
		zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
		zap.Any("location", map[string]interface{}{
			"file":          customErr.Location.File,
			"line":          customErr.Location.Line,
			"function_name": customErr.Location.FunctionName,
		}),
		zap.Error(err),
	)

	response := exceptions.CustomError{
		StatusCode:    customErr.StatusCode,
		Success:       false,
		ClientMessage: customErr.ClientMessage,
	}

	appEnvironment := GetEnvString("APP_ENV", constvars.EnvironmentDevelopment)
	if appEnvironment != constvars.EnvironmentProduction {
		response.DevMessage = customErr.DevMessage
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(customErr.StatusCode)
	json.NewEncoder(w).Encode(response)
}
