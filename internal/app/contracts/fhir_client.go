package contracts

import (
	"context"
	"ember-emr-service/internal/pkg/fhir_dto"
)

type FHIRClient interface {
	Request(ctx context.Context, method, path string, body any) (fhir_dto.Resource, error)
	GetResource(ctx context.Context, resourceType, id string) (fhir_dto.Resource, error)
	SearchResources(ctx context.Context, resourceType string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreateResource(ctx context.Context, resource fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdateResource(ctx context.Context, resourceType, id string, resource fhir_dto.Resource) (fhir_dto.Resource, error)
	DeleteResource(ctx context.Context, resourceType, id string) error

	PatientFhirClient
	ObservationFhirClient
	ConditionFhirClient
	MedicationRequestFhirClient
	AppointmentFhirClient
	DiagnosticReportFhirClient
	ImmunizationFhirClient
}

type PatientFhirClient interface {
	GetPatient(ctx context.Context, patientID string) (fhir_dto.Resource, error)
	SearchPatients(ctx context.Context, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreatePatient(ctx context.Context, patient fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdatePatient(ctx context.Context, patientID string, patient fhir_dto.Resource) (fhir_dto.Resource, error)
}

type ObservationFhirClient interface {
	GetPatientObservations(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreateObservation(ctx context.Context, observation fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdateObservation(ctx context.Context, observationID string, observation fhir_dto.Resource) (fhir_dto.Resource, error)
}

type ConditionFhirClient interface {
	GetPatientConditions(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreateCondition(ctx context.Context, condition fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdateCondition(ctx context.Context, conditionID string, condition fhir_dto.Resource) (fhir_dto.Resource, error)
}

type MedicationRequestFhirClient interface {
	GetPatientMedicationRequests(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreateMedicationRequest(ctx context.Context, medicationRequest fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdateMedicationRequest(ctx context.Context, medicationRequestID string, medicationRequest fhir_dto.Resource) (fhir_dto.Resource, error)
}

type AppointmentFhirClient interface {
	GetPatientAppointments(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreateAppointment(ctx context.Context, appointment fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdateAppointment(ctx context.Context, appointmentID string, appointment fhir_dto.Resource) (fhir_dto.Resource, error)
}

type DiagnosticReportFhirClient interface {
	GetPatientDiagnosticReports(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreateDiagnosticReport(ctx context.Context, report fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdateDiagnosticReport(ctx context.Context, reportID string, report fhir_dto.Resource) (fhir_dto.Resource, error)
}

type ImmunizationFhirClient interface {
	GetPatientImmunizations(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error)
	CreateImmunization(ctx context.Context, immunization fhir_dto.Resource) (fhir_dto.Resource, error)
	UpdateImmunization(ctx context.Context, immunizationID string, immunization fhir_dto.Resource) (fhir_dto.Resource, error)
}
