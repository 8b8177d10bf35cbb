package contracts

import (
	"context"
	"ember-emr-service/internal/pkg/dto/requests"
	"ember-emr-service/internal/pkg/dto/responses"
)

type DashboardUsecase interface {
	DefaultPatientID() string
	GetPatientProfile(ctx context.Context, patientID string) (*responses.PatientProfile, error)
	SearchPatients(ctx context.Context, query *requests.SearchPatients) (*responses.PatientSearchResult, error)
	GetMedicalRecords(ctx context.Context, patientID string) (*responses.MedicalRecords, error)
	GetPatientMedications(ctx context.Context, patientID string) ([]responses.MedicationRow, error)
	GetPatientAppointments(ctx context.Context, patientID string) ([]responses.AppointmentRow, error)
	GetOverview(ctx context.Context, patientID string) (*responses.PatientOverview, error)
}
