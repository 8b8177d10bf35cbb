package controllers

import (
	"context"
	"ember-emr-service/internal/app/contracts"
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/dto/requests"
	"ember-emr-service/internal/pkg/exceptions"
	"ember-emr-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

type PatientController struct {
	Log              *zap.Logger
	DashboardUsecase contracts.DashboardUsecase
	// Timeout bounds every usecase call; it should exceed the FHIR client timeout.
	Timeout time.Duration
}

func NewPatientController(logger *zap.Logger, dashboardUsecase contracts.DashboardUsecase, timeout time.Duration) *PatientController {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &PatientController{
		Log:              logger,
		DashboardUsecase: dashboardUsecase,
		Timeout:          timeout,
	}
}

// requestContext checks the request id and the patient id path parameter.
// ok is false when an error response has already been written.
func (ctrl *PatientController) requestContext(w http.ResponseWriter, r *http.Request, withPatientID bool) (requestID, patientID string, ok bool) {
	requestID = utils.GetRequestID(r.Context())
	if requestID == "" {
		ctrl.Log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", "", false
	}

	if !withPatientID {
		return requestID, "", true
	}

	patientID = chi.URLParam(r, constvars.URLParamPatientID)
	if err := utils.ValidateFHIRID(patientID); err != nil {
		ctrl.Log.Error("Invalid patient ID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingErrorTypeKey, "validation"),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidPatientID(err))
		return "", "", false
	}

	ctrl.Log.Debug("Retrieved patient ID from URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return requestID, patientID, true
}

func (ctrl *PatientController) fail(w http.ResponseWriter, requestID string, err error) {
	utils.BuildErrorResponse(ctrl.Log.With(zap.String(constvars.LoggingRequestIDKey, requestID)), w, err)
}

func (ctrl *PatientController) SearchPatients(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := ctrl.requestContext(w, r, false)
	if !ok {
		return
	}

	query := r.URL.Query()
	request := &requests.SearchPatients{
		Name:       query.Get(constvars.URLQueryParamName),
		Identifier: query.Get(constvars.URLQueryParamIdentifier),
		BirthDate:  query.Get(constvars.URLQueryParamBirthdate),
	}
	if rawCount := query.Get(constvars.URLQueryParamCount); rawCount != "" {
		count, err := strconv.Atoi(rawCount)
		if err != nil {
			ctrl.Log.Error("Invalid count query parameter",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingErrorTypeKey, "validation"),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidQuery(err))
			return
		}
		request.Count = count
	}
	utils.SanitizeSearchPatientsRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("Search query validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "validation"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.SearchPatients(ctx, request)
	if err != nil {
		ctrl.fail(w, requestID, err)
		return
	}

	ctrl.Log.Info("Patient search completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntryCountKey, len(result.Patients)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SearchPatientsSuccessMessage, result)
}

// GetMyProfile serves the patient dashboard, which always shows the
// configured demo patient.
func (ctrl *PatientController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := ctrl.requestContext(w, r, false)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.GetPatientProfile(ctx, ctrl.DashboardUsecase.DefaultPatientID())
	if err != nil {
		ctrl.fail(w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientProfileSuccessMessage, result)
}

func (ctrl *PatientController) GetPatientProfile(w http.ResponseWriter, r *http.Request) {
	requestID, patientID, ok := ctrl.requestContext(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.GetPatientProfile(ctx, patientID)
	if err != nil {
		ctrl.fail(w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientProfileSuccessMessage, result)
}

func (ctrl *PatientController) GetOverview(w http.ResponseWriter, r *http.Request) {
	requestID, patientID, ok := ctrl.requestContext(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.GetOverview(ctx, patientID)
	if err != nil {
		ctrl.fail(w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientOverviewSuccessMessage, result)
}

func (ctrl *PatientController) GetMedicalRecords(w http.ResponseWriter, r *http.Request) {
	requestID, patientID, ok := ctrl.requestContext(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.GetMedicalRecords(ctx, patientID)
	if err != nil {
		ctrl.fail(w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMedicalRecordsSuccessMessage, result)
}

func (ctrl *PatientController) GetMedications(w http.ResponseWriter, r *http.Request) {
	requestID, patientID, ok := ctrl.requestContext(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.GetPatientMedications(ctx, patientID)
	if err != nil {
		ctrl.fail(w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientMedicationsSuccessMessage, result)
}

func (ctrl *PatientController) GetAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, patientID, ok := ctrl.requestContext(w, r, true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	result, err := ctrl.DashboardUsecase.GetPatientAppointments(ctx, patientID)
	if err != nil {
		ctrl.fail(w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientAppointmentsSuccessMessage, result)
}
