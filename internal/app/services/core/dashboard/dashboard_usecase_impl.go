package dashboard

import (
	"context"
	"ember-emr-service/internal/app/config"
	"ember-emr-service/internal/app/contracts"
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/dto/requests"
	"ember-emr-service/internal/pkg/dto/responses"
	"ember-emr-service/internal/pkg/fhir_dto"
	"ember-emr-service/internal/pkg/utils"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type dashboardUsecase struct {
	FHIRClient     contracts.FHIRClient
	InternalConfig *config.InternalConfig
	DefaultPatient string
	Log            *zap.Logger
	now            func() time.Time
}

func NewDashboardUsecase(
	fhirClient contracts.FHIRClient,
	defaultPatientID string,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DashboardUsecase {
	return &dashboardUsecase{
		FHIRClient:     fhirClient,
		InternalConfig: internalConfig,
		DefaultPatient: defaultPatientID,
		Log:            logger,
		now:            time.Now,
	}
}

func (uc *dashboardUsecase) DefaultPatientID() string {
	return uc.DefaultPatient
}

func (uc *dashboardUsecase) locale() string {
	if uc.InternalConfig == nil || uc.InternalConfig.App.DisplayLocale == "" {
		return constvars.DisplayDefaultLocale
	}
	return uc.InternalConfig.App.DisplayLocale
}

func (uc *dashboardUsecase) recentItemsCount() int {
	if uc.InternalConfig == nil || uc.InternalConfig.App.RecentItemsCount <= 0 {
		return constvars.FhirDefaultRecentItemsCount
	}
	return uc.InternalConfig.App.RecentItemsCount
}

func (uc *dashboardUsecase) GetPatientProfile(ctx context.Context, patientID string) (*responses.PatientProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("dashboardUsecase.GetPatientProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.FHIRClient.GetPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("dashboardUsecase.GetPatientProfile error fetching patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.PatientProfile{
		Summary: uc.buildPatientSummary(patient),
		Patient: patient,
	}, nil
}

func (uc *dashboardUsecase) SearchPatients(ctx context.Context, query *requests.SearchPatients) (*responses.PatientSearchResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("dashboardUsecase.SearchPatients called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	count := query.Count
	if count <= 0 {
		count = constvars.FhirDefaultPatientSearchCount
	}

	var params fhir_dto.SearchParams
	if query.Name != "" {
		params = params.Set(constvars.FhirSearchParamName, query.Name)
	}
	if query.Identifier != "" {
		params = params.Set(constvars.FhirSearchParamIdentifier, query.Identifier)
	}
	if query.BirthDate != "" {
		params = params.Set(constvars.FhirSearchParamBirthdate, query.BirthDate)
	}
	params = params.Set(constvars.FhirSearchParamCount, strconv.Itoa(count))

	bundle, err := uc.FHIRClient.SearchPatients(ctx, params)
	if err != nil {
		uc.Log.Error("dashboardUsecase.SearchPatients error searching patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := &responses.PatientSearchResult{Patients: []responses.PatientSummary{}}
	if total, ok := bundle.Total(); ok {
		result.Total = &total
	}
	for _, patient := range bundle.ResourcesOfType(constvars.ResourcePatient) {
		result.Patients = append(result.Patients, uc.buildPatientSummary(patient))
	}

	uc.Log.Info("dashboardUsecase.SearchPatients succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(result.Patients)),
	)
	return result, nil
}

// GetMedicalRecords fetches the four record lists concurrently. The first
// failure cancels the remaining fetches and is returned unchanged.
func (uc *dashboardUsecase) GetMedicalRecords(ctx context.Context, patientID string) (*responses.MedicalRecords, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("dashboardUsecase.GetMedicalRecords called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	var observations, conditions, reports, immunizations *fhir_dto.Bundle
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatientObservations", requestID, func() (err error) {
			observations, err = uc.FHIRClient.GetPatientObservations(groupCtx, patientID, nil)
			return err
		})
	})
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatientConditions", requestID, func() (err error) {
			conditions, err = uc.FHIRClient.GetPatientConditions(groupCtx, patientID, nil)
			return err
		})
	})
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatientDiagnosticReports", requestID, func() (err error) {
			reports, err = uc.FHIRClient.GetPatientDiagnosticReports(groupCtx, patientID, nil)
			return err
		})
	})
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatientImmunizations", requestID, func() (err error) {
			immunizations, err = uc.FHIRClient.GetPatientImmunizations(groupCtx, patientID, nil)
			return err
		})
	})
	if err := group.Wait(); err != nil {
		uc.Log.Error("dashboardUsecase.GetMedicalRecords error fetching records",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	records := &responses.MedicalRecords{
		Observations:      uc.buildObservationRows(observations.ResourcesOfType(constvars.ResourceObservation)),
		Conditions:        uc.buildConditionRows(conditions.ResourcesOfType(constvars.ResourceCondition)),
		DiagnosticReports: make([]responses.DiagnosticReportRow, 0),
		Immunizations:     make([]responses.ImmunizationRow, 0),
	}
	for _, report := range reports.ResourcesOfType(constvars.ResourceDiagnosticReport) {
		status, _ := report.String("status")
		records.DiagnosticReports = append(records.DiagnosticReports, responses.DiagnosticReportRow{
			ID:     report.ID(),
			Name:   utils.GetConceptDisplay(report, "code"),
			Status: status,
			Issued: utils.FormatDateInLocale(firstString(report, "issued", "effectiveDateTime"), uc.locale()),
		})
	}
	for _, immunization := range immunizations.ResourcesOfType(constvars.ResourceImmunization) {
		status, _ := immunization.String("status")
		records.Immunizations = append(records.Immunizations, responses.ImmunizationRow{
			ID:         immunization.ID(),
			Vaccine:    utils.GetConceptDisplay(immunization, "vaccineCode"),
			Status:     status,
			Occurrence: utils.FormatDateInLocale(firstString(immunization, "occurrenceDateTime", "occurrenceString"), uc.locale()),
		})
	}

	uc.Log.Info("dashboardUsecase.GetMedicalRecords succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("observation_count", len(records.Observations)),
		zap.Int("condition_count", len(records.Conditions)),
		zap.Int("diagnostic_report_count", len(records.DiagnosticReports)),
		zap.Int("immunization_count", len(records.Immunizations)),
	)
	return records, nil
}

func (uc *dashboardUsecase) GetPatientMedications(ctx context.Context, patientID string) ([]responses.MedicationRow, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("dashboardUsecase.GetPatientMedications called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	bundle, err := uc.FHIRClient.GetPatientMedicationRequests(ctx, patientID, nil)
	if err != nil {
		uc.Log.Error("dashboardUsecase.GetPatientMedications error fetching medication requests",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	rows := make([]responses.MedicationRow, 0)
	for _, medicationRequest := range bundle.ResourcesOfType(constvars.ResourceMedicationRequest) {
		status, _ := medicationRequest.String("status")
		intent, _ := medicationRequest.String("intent")
		authoredOn, _ := medicationRequest.String("authoredOn")
		rows = append(rows, responses.MedicationRow{
			ID:         medicationRequest.ID(),
			Medication: utils.GetMedicationDisplay(medicationRequest),
			Status:     status,
			Variant:    utils.MedicationStatusVariant(status),
			Intent:     intent,
			Dosage:     utils.FormatDosage(medicationRequest),
			AuthoredOn: utils.FormatDateInLocale(authoredOn, uc.locale()),
		})
	}
	return rows, nil
}

func (uc *dashboardUsecase) GetPatientAppointments(ctx context.Context, patientID string) ([]responses.AppointmentRow, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("dashboardUsecase.GetPatientAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	bundle, err := uc.FHIRClient.GetPatientAppointments(ctx, patientID, nil)
	if err != nil {
		uc.Log.Error("dashboardUsecase.GetPatientAppointments error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.buildAppointmentRows(bundle.ResourcesOfType(constvars.ResourceAppointment)), nil
}

// GetOverview loads the home dashboard: the patient and the most recent
// observations, conditions and appointments, all fetched concurrently.
func (uc *dashboardUsecase) GetOverview(ctx context.Context, patientID string) (*responses.PatientOverview, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("dashboardUsecase.GetOverview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	limit := uc.recentItemsCount()
	count := strconv.Itoa(limit)

	var (
		patient                                fhir_dto.Resource
		observations, conditions, appointments *fhir_dto.Bundle
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatient", requestID, func() (err error) {
			patient, err = uc.FHIRClient.GetPatient(groupCtx, patientID)
			return err
		})
	})
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatientObservations", requestID, func() (err error) {
			observations, err = uc.FHIRClient.GetPatientObservations(groupCtx, patientID, fhir_dto.NewSearchParams(
				constvars.FhirSearchParamCount, count,
				constvars.FhirSearchParamSort, "-date",
			))
			return err
		})
	})
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatientConditions", requestID, func() (err error) {
			conditions, err = uc.FHIRClient.GetPatientConditions(groupCtx, patientID, fhir_dto.NewSearchParams(
				constvars.FhirSearchParamCount, count,
				constvars.FhirSearchParamClinicalStatus, "active",
			))
			return err
		})
	})
	group.Go(func() error {
		return utils.LogOperation(uc.Log, "fhirClient.GetPatientAppointments", requestID, func() (err error) {
			appointments, err = uc.FHIRClient.GetPatientAppointments(groupCtx, patientID, fhir_dto.NewSearchParams(
				constvars.FhirSearchParamCount, count,
				constvars.FhirSearchParamSort, "date",
			))
			return err
		})
	})
	if err := group.Wait(); err != nil {
		uc.Log.Error("dashboardUsecase.GetOverview error fetching overview",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.PatientOverview{
		Patient:            uc.buildPatientSummary(patient),
		RecentObservations: limitRows(uc.buildObservationRows(observations.ResourcesOfType(constvars.ResourceObservation)), limit),
		ActiveConditions:   limitRows(uc.buildConditionRows(conditions.ResourcesOfType(constvars.ResourceCondition)), limit),
		Appointments:       limitRows(uc.buildAppointmentRows(appointments.ResourcesOfType(constvars.ResourceAppointment)), limit),
	}, nil
}

func (uc *dashboardUsecase) buildPatientSummary(patient fhir_dto.Resource) responses.PatientSummary {
	gender, _ := patient.String("gender")
	birthDate, _ := patient.String("birthDate")
	return responses.PatientSummary{
		ID:         patient.ID(),
		Name:       utils.FormatPatientName(patient),
		Identifier: utils.GetPatientIdentifier(patient, ""),
		Gender:     gender,
		BirthDate:  utils.FormatDateInLocale(birthDate, uc.locale()),
		Age:        utils.CalculateAge(birthDate, uc.now()),
		Address:    utils.FormatPatientAddress(patient),
		Phone:      utils.FormatPatientPhone(patient),
		Email:      utils.FormatPatientEmail(patient),
	}
}

func (uc *dashboardUsecase) buildObservationRows(observations []fhir_dto.Resource) []responses.ObservationRow {
	rows := make([]responses.ObservationRow, 0, len(observations))
	for _, observation := range observations {
		status, _ := observation.String("status")
		rows = append(rows, responses.ObservationRow{
			ID:      observation.ID(),
			Name:    utils.GetConceptDisplay(observation, "code"),
			Value:   utils.FormatObservationValue(observation),
			Status:  status,
			Variant: utils.ObservationStatusVariant(status),
			Date:    utils.FormatDateInLocale(firstString(observation, "effectiveDateTime", "issued"), uc.locale()),
		})
	}
	return rows
}

func (uc *dashboardUsecase) buildConditionRows(conditions []fhir_dto.Resource) []responses.ConditionRow {
	rows := make([]responses.ConditionRow, 0, len(conditions))
	for _, condition := range conditions {
		clinicalStatus := utils.ConditionClinicalStatus(condition)
		rows = append(rows, responses.ConditionRow{
			ID:             condition.ID(),
			Name:           utils.GetConditionDisplay(condition),
			ClinicalStatus: clinicalStatus,
			Variant:        utils.ConditionStatusVariant(clinicalStatus),
			RecordedDate:   utils.FormatDateInLocale(firstString(condition, "recordedDate", "onsetDateTime"), uc.locale()),
		})
	}
	return rows
}

func (uc *dashboardUsecase) buildAppointmentRows(appointments []fhir_dto.Resource) []responses.AppointmentRow {
	now := uc.now()
	rows := make([]responses.AppointmentRow, 0, len(appointments))
	for _, appointment := range appointments {
		status, _ := appointment.String("status")
		description, _ := appointment.String("description")
		start, _ := appointment.String("start")
		end, _ := appointment.String("end")

		var participants []string
		for _, participant := range appointment.Maps("participant") {
			if display, ok := participant.String("actor", "display"); ok && display != "" {
				participants = append(participants, display)
			}
		}

		startTime, hasStart := utils.ParseFHIRDate(start)
		rows = append(rows, responses.AppointmentRow{
			ID:           appointment.ID(),
			Type:         utils.GetAppointmentType(appointment),
			Status:       status,
			StatusLabel:  utils.GetAppointmentStatus(appointment),
			Variant:      utils.AppointmentStatusVariant(status),
			Description:  description,
			Start:        utils.FormatDateTimeInLocale(start, uc.locale()),
			End:          utils.FormatDateTimeInLocale(end, uc.locale()),
			Participants: participants,
			Upcoming:     hasStart && startTime.After(now),
		})
	}
	return rows
}

func firstString(resource fhir_dto.Resource, keys ...string) string {
	for _, key := range keys {
		if value, ok := resource.String(key); ok && value != "" {
			return value
		}
	}
	return ""
}

func limitRows[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
