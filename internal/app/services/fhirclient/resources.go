package fhirclient

import (
	"context"
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/exceptions"
	"ember-emr-service/internal/pkg/fhir_dto"
	"fmt"
)

// patientScoped puts patient=<patientID> first and lets the caller's params
// override it.
func patientScoped(patientID string, params fhir_dto.SearchParams) fhir_dto.SearchParams {
	return fhir_dto.MergeSearchParams(
		fhir_dto.NewSearchParams(constvars.FhirSearchParamPatient, patientID),
		params,
	)
}

func (c *Client) searchForPatient(ctx context.Context, resourceType, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	if patientID == "" {
		return nil, exceptions.ErrFHIRMissingResourceID()
	}
	return c.SearchResources(ctx, resourceType, patientScoped(patientID, params))
}

// createTyped fills in a missing resourceType and rejects a mismatching one.
func (c *Client) createTyped(ctx context.Context, resourceType string, resource fhir_dto.Resource) (fhir_dto.Resource, error) {
	typed, err := withResourceType(resourceType, resource)
	if err != nil {
		return nil, err
	}
	return c.CreateResource(ctx, typed)
}

func (c *Client) updateTyped(ctx context.Context, resourceType, id string, resource fhir_dto.Resource) (fhir_dto.Resource, error) {
	typed, err := withResourceType(resourceType, resource)
	if err != nil {
		return nil, err
	}
	return c.UpdateResource(ctx, resourceType, id, typed)
}

func withResourceType(resourceType string, resource fhir_dto.Resource) (fhir_dto.Resource, error) {
	current := resource.ResourceType()
	if current == resourceType {
		return resource, nil
	}
	if current != "" {
		return nil, exceptions.ErrFHIRResourceTypeMismatch(fmt.Errorf("got %s, want %s", current, resourceType))
	}

	typed := make(fhir_dto.Resource, len(resource)+1)
	for key, value := range resource {
		typed[key] = value
	}
	typed["resourceType"] = resourceType
	return typed, nil
}

// Patient

func (c *Client) GetPatient(ctx context.Context, patientID string) (fhir_dto.Resource, error) {
	return c.GetResource(ctx, constvars.ResourcePatient, patientID)
}

func (c *Client) SearchPatients(ctx context.Context, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	return c.SearchResources(ctx, constvars.ResourcePatient, params)
}

func (c *Client) CreatePatient(ctx context.Context, patient fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.createTyped(ctx, constvars.ResourcePatient, patient)
}

func (c *Client) UpdatePatient(ctx context.Context, patientID string, patient fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.updateTyped(ctx, constvars.ResourcePatient, patientID, patient)
}

// Observation

func (c *Client) GetPatientObservations(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	return c.searchForPatient(ctx, constvars.ResourceObservation, patientID, params)
}

func (c *Client) CreateObservation(ctx context.Context, observation fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.createTyped(ctx, constvars.ResourceObservation, observation)
}

func (c *Client) UpdateObservation(ctx context.Context, observationID string, observation fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.updateTyped(ctx, constvars.ResourceObservation, observationID, observation)
}

// Condition

func (c *Client) GetPatientConditions(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	return c.searchForPatient(ctx, constvars.ResourceCondition, patientID, params)
}

func (c *Client) CreateCondition(ctx context.Context, condition fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.createTyped(ctx, constvars.ResourceCondition, condition)
}

func (c *Client) UpdateCondition(ctx context.Context, conditionID string, condition fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.updateTyped(ctx, constvars.ResourceCondition, conditionID, condition)
}

// MedicationRequest

func (c *Client) GetPatientMedicationRequests(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	return c.searchForPatient(ctx, constvars.ResourceMedicationRequest, patientID, params)
}

func (c *Client) CreateMedicationRequest(ctx context.Context, medicationRequest fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.createTyped(ctx, constvars.ResourceMedicationRequest, medicationRequest)
}

func (c *Client) UpdateMedicationRequest(ctx context.Context, medicationRequestID string, medicationRequest fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.updateTyped(ctx, constvars.ResourceMedicationRequest, medicationRequestID, medicationRequest)
}

// Appointment

func (c *Client) GetPatientAppointments(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	return c.searchForPatient(ctx, constvars.ResourceAppointment, patientID, params)
}

func (c *Client) CreateAppointment(ctx context.Context, appointment fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.createTyped(ctx, constvars.ResourceAppointment, appointment)
}

func (c *Client) UpdateAppointment(ctx context.Context, appointmentID string, appointment fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.updateTyped(ctx, constvars.ResourceAppointment, appointmentID, appointment)
}

// DiagnosticReport

func (c *Client) GetPatientDiagnosticReports(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	return c.searchForPatient(ctx, constvars.ResourceDiagnosticReport, patientID, params)
}

func (c *Client) CreateDiagnosticReport(ctx context.Context, report fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.createTyped(ctx, constvars.ResourceDiagnosticReport, report)
}

func (c *Client) UpdateDiagnosticReport(ctx context.Context, reportID string, report fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.updateTyped(ctx, constvars.ResourceDiagnosticReport, reportID, report)
}

// Immunization

func (c *Client) GetPatientImmunizations(ctx context.Context, patientID string, params fhir_dto.SearchParams) (*fhir_dto.Bundle, error) {
	return c.searchForPatient(ctx, constvars.ResourceImmunization, patientID, params)
}

func (c *Client) CreateImmunization(ctx context.Context, immunization fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.createTyped(ctx, constvars.ResourceImmunization, immunization)
}

func (c *Client) UpdateImmunization(ctx context.Context, immunizationID string, immunization fhir_dto.Resource) (fhir_dto.Resource, error) {
	return c.updateTyped(ctx, constvars.ResourceImmunization, immunizationID, immunization)
}
