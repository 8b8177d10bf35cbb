package responses

import "ember-emr-service/internal/pkg/fhir_dto"

// PatientSummary is the display form of a Patient shared by every dashboard.
type PatientSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	Gender     string `json:"gender,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
	Age        int    `json:"age"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type PatientProfile struct {
	Summary PatientSummary    `json:"summary"`
	Patient fhir_dto.Resource `json:"patient"`
}

type PatientSearchResult struct {
	Total    *int             `json:"total,omitempty"`
	Patients []PatientSummary `json:"patients"`
}

type ObservationRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Value   string `json:"value"`
	Status  string `json:"status"`
	Variant string `json:"variant"`
	Date    string `json:"date"`
}

type ConditionRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ClinicalStatus string `json:"clinical_status"`
	Variant        string `json:"variant"`
	RecordedDate   string `json:"recorded_date"`
}

type DiagnosticReportRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Issued string `json:"issued"`
}

type ImmunizationRow struct {
	ID         string `json:"id"`
	Vaccine    string `json:"vaccine"`
	Status     string `json:"status"`
	Occurrence string `json:"occurrence"`
}

type MedicalRecords struct {
	Observations      []ObservationRow      `json:"observations"`
	Conditions        []ConditionRow        `json:"conditions"`
	DiagnosticReports []DiagnosticReportRow `json:"diagnostic_reports"`
	Immunizations     []ImmunizationRow     `json:"immunizations"`
}

type MedicationRow struct {
	ID         string `json:"id"`
	Medication string `json:"medication"`
	Status     string `json:"status"`
	Variant    string `json:"variant"`
	Intent     string `json:"intent,omitempty"`
	Dosage     string `json:"dosage"`
	AuthoredOn string `json:"authored_on"`
}

type AppointmentRow struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	StatusLabel  string   `json:"status_label"`
	Variant      string   `json:"variant"`
	Description  string   `json:"description,omitempty"`
	Start        string   `json:"start"`
	End          string   `json:"end,omitempty"`
	Participants []string `json:"participants,omitempty"`
	Upcoming     bool     `json:"upcoming"`
}

type PatientOverview struct {
	Patient            PatientSummary   `json:"patient"`
	RecentObservations []ObservationRow `json:"recent_observations"`
	ActiveConditions   []ConditionRow   `json:"active_conditions"`
	Appointments       []AppointmentRow `json:"appointments"`
}
