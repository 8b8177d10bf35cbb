package config

import (
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/fhir_dto"
	"strings"
	"time"
)

type Environment string

const (
	EnvironmentDevelopment Environment = constvars.EnvironmentDevelopment
	EnvironmentTest        Environment = constvars.EnvironmentTest
	EnvironmentProduction  Environment = constvars.EnvironmentProduction
)

// ParseEnvironment falls back to development for unknown values.
func ParseEnvironment(value string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(value))) {
	case EnvironmentProduction:
		return EnvironmentProduction
	case EnvironmentTest:
		return EnvironmentTest
	default:
		return EnvironmentDevelopment
	}
}

// FHIRConfig is the resolved configuration of one FHIR client. Values are
// never mutated after NewFHIRConfig returns; every map is a private copy.
type FHIRConfig struct {
	BaseURL          string
	Timeout          time.Duration
	Headers          map[string]string
	DefaultPatientID string
	Version          string
	// SearchDefaults maps a resource type to the parameters added to every
	// search of that type unless the caller supplies the same name.
	SearchDefaults map[string]fhir_dto.SearchParams
}

// FHIROptions are caller overrides. Zero values mean "keep the default".
type FHIROptions struct {
	BaseURL          string
	Timeout          time.Duration
	Headers          map[string]string
	DefaultPatientID string
	SearchDefaults   map[string]fhir_dto.SearchParams
}

func DefaultFHIRConfig() FHIRConfig {
	return FHIRConfig{
		BaseURL: constvars.FhirDefaultBaseURL,
		Timeout: constvars.FhirDefaultTimeoutInMillis * time.Millisecond,
		Headers: map[string]string{
			constvars.HeaderContentType: constvars.MIMEApplicationFHIRJSON,
			constvars.HeaderAccept:      constvars.MIMEApplicationFHIRJSON,
		},
		DefaultPatientID: constvars.FhirDefaultPatientID,
		Version:          constvars.FhirVersionR4,
		SearchDefaults:   DefaultSearchDefaults(),
	}
}

func DefaultSearchDefaults() map[string]fhir_dto.SearchParams {
	return map[string]fhir_dto.SearchParams{
		constvars.ResourcePatient: fhir_dto.NewSearchParams(
			constvars.FhirSearchParamInclude, "Patient:general-practitioner",
		),
		constvars.ResourceObservation: fhir_dto.NewSearchParams(
			constvars.FhirSearchParamSort, "-date",
			constvars.FhirSearchParamCount, constvars.FhirObservationDefaultSearchCountText,
		),
		constvars.ResourceCondition: fhir_dto.NewSearchParams(
			constvars.FhirSearchParamSort, "-recorded-date",
			constvars.FhirSearchParamClinicalStatus, "active,resolved",
		),
		constvars.ResourceMedicationRequest: fhir_dto.NewSearchParams(
			constvars.FhirSearchParamSort, "-authored-on",
			constvars.FhirSearchParamStatus, "active,completed",
		),
		constvars.ResourceAppointment: fhir_dto.NewSearchParams(
			constvars.FhirSearchParamSort, "date",
			constvars.FhirSearchParamStatus, "booked,arrived,fulfilled",
		),
		constvars.ResourceDiagnosticReport: fhir_dto.NewSearchParams(
			constvars.FhirSearchParamSort, "-date",
			constvars.FhirSearchParamStatus, "final,amended",
		),
		constvars.ResourceImmunization: fhir_dto.NewSearchParams(
			constvars.FhirSearchParamSort, "-date",
			constvars.FhirSearchParamStatus, "completed",
		),
	}
}

// NewFHIRConfig resolves a client configuration in three layers, later layers
// winning: the documented defaults, the environment adjustment (development
// waits 30s instead of 10s), then options. Headers are merged per header name
// and search defaults per resource type and then per parameter name.
func NewFHIRConfig(env Environment, options FHIROptions) FHIRConfig {
	cfg := DefaultFHIRConfig()

	if env == EnvironmentDevelopment {
		cfg.Timeout = constvars.FhirDevelopmentTimeoutInMillis * time.Millisecond
	}

	if options.BaseURL != "" {
		cfg.BaseURL = options.BaseURL
	}
	if options.Timeout > 0 {
		cfg.Timeout = options.Timeout
	}
	if options.DefaultPatientID != "" {
		cfg.DefaultPatientID = options.DefaultPatientID
	}
	cfg.Headers = MergeHeaders(cfg.Headers, options.Headers)
	cfg.SearchDefaults = MergeSearchDefaults(cfg.SearchDefaults, options.SearchDefaults)
	return cfg
}

// MergeHeaders returns a new map holding defaults overlaid by overrides.
// Header names are compared case-insensitively so "accept" replaces "Accept".
func MergeHeaders(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	for name, value := range defaults {
		merged[name] = value
	}
	for name, value := range overrides {
		for existing := range merged {
			if existing != name && strings.EqualFold(existing, name) {
				delete(merged, existing)
			}
		}
		merged[name] = value
	}
	return merged
}

func MergeSearchDefaults(defaults, overrides map[string]fhir_dto.SearchParams) map[string]fhir_dto.SearchParams {
	merged := make(map[string]fhir_dto.SearchParams, len(defaults)+len(overrides))
	for resourceType, params := range defaults {
		merged[resourceType] = params.Clone()
	}
	for resourceType, params := range overrides {
		merged[resourceType] = fhir_dto.MergeSearchParams(merged[resourceType], params)
	}
	return merged
}

// FHIROptions translates the environment values into client overrides.
func (c *InternalConfig) FHIROptions() FHIROptions {
	options := FHIROptions{
		BaseURL:          c.FHIR.ServerURL,
		DefaultPatientID: c.FHIR.DefaultPatientID,
	}
	if c.FHIR.TimeoutInMillis > 0 {
		options.Timeout = time.Duration(c.FHIR.TimeoutInMillis) * time.Millisecond
	}
	if c.FHIR.Authorization != "" {
		options.Headers = map[string]string{constvars.HeaderAuthorization: c.FHIR.Authorization}
	}
	return options
}
