package config

type (
	DriverConfig struct {
		Logger Logger
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type InternalConfig struct {
	App  App     `mapstructure:"app"`
	FHIR AppFHIR `mapstructure:"fhir"`
}

type App struct {
	Env             Environment `mapstructure:"env"`
	Port            string      `mapstructure:"port"`
	Version         string      `mapstructure:"version"`
	EndpointPrefix  string      `mapstructure:"endpoint_prefix"`
	DisplayLocale   string      `mapstructure:"display_locale"`
	AllowedOrigins  []string    `mapstructure:"allowed_origins"`
	MaxRequests     int         `mapstructure:"max_requests"`
	ShutdownTimeout int         `mapstructure:"shutdown_timeout"`
	// RecentItemsCount bounds the overview lists on the home dashboards.
	RecentItemsCount int `mapstructure:"recent_items_count"`
}

// AppFHIR holds the raw environment values; NewFHIRConfig turns them into the
// client configuration.
type AppFHIR struct {
	ServerURL        string `mapstructure:"server_url"`
	TimeoutInMillis  int    `mapstructure:"timeout_in_millis"`
	DefaultPatientID string `mapstructure:"default_patient_id"`
	Authorization    string `mapstructure:"authorization"`
}
