package config

import (
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

// NewInternalConfig reads the environment once at startup.
func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:              ParseEnvironment(utils.GetEnvString("APP_ENV", constvars.EnvironmentDevelopment)),
			Port:             utils.GetEnvString("APP_PORT", ":8080"),
			Version:          utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:   utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			DisplayLocale:    utils.GetEnvString("APP_DISPLAY_LOCALE", constvars.DisplayDefaultLocale),
			AllowedOrigins:   utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:      utils.GetEnvInt("APP_MAX_REQUESTS", 20),
			ShutdownTimeout:  utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RecentItemsCount: utils.GetEnvInt("APP_RECENT_ITEMS_COUNT", constvars.FhirDefaultRecentItemsCount),
		},
		FHIR: AppFHIR{
			ServerURL:        utils.GetEnvString("FHIR_SERVER_URL", ""),
			TimeoutInMillis:  utils.GetEnvInt("FHIR_TIMEOUT_IN_MILLIS", 0),
			DefaultPatientID: utils.GetEnvString("FHIR_DEFAULT_PATIENT_ID", ""),
			Authorization:    utils.GetEnvString("FHIR_AUTHORIZATION", ""),
		},
	}
}
