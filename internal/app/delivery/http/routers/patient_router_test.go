package routers

import (
	"context"
	"ember-emr-service/internal/app/config"
	"ember-emr-service/internal/app/delivery/http/controllers"
	"ember-emr-service/internal/app/delivery/http/middlewares"
	"ember-emr-service/internal/pkg/dto/requests"
	"ember-emr-service/internal/pkg/dto/responses"
	"ember-emr-service/internal/pkg/exceptions"
	"ember-emr-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockDashboardUsecase struct {
	mock.Mock
}

func (m *MockDashboardUsecase) DefaultPatientID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockDashboardUsecase) GetPatientProfile(ctx context.Context, patientID string) (*responses.PatientProfile, error) {
	args := m.Called(ctx, patientID)
	profile, _ := args.Get(0).(*responses.PatientProfile)
	return profile, args.Error(1)
}

func (m *MockDashboardUsecase) SearchPatients(ctx context.Context, query *requests.SearchPatients) (*responses.PatientSearchResult, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).(*responses.PatientSearchResult)
	return result, args.Error(1)
}

func (m *MockDashboardUsecase) GetMedicalRecords(ctx context.Context, patientID string) (*responses.MedicalRecords, error) {
	args := m.Called(ctx, patientID)
	records, _ := args.Get(0).(*responses.MedicalRecords)
	return records, args.Error(1)
}

func (m *MockDashboardUsecase) GetPatientMedications(ctx context.Context, patientID string) ([]responses.MedicationRow, error) {
	args := m.Called(ctx, patientID)
	rows, _ := args.Get(0).([]responses.MedicationRow)
	return rows, args.Error(1)
}

func (m *MockDashboardUsecase) GetPatientAppointments(ctx context.Context, patientID string) ([]responses.AppointmentRow, error) {
	args := m.Called(ctx, patientID)
	rows, _ := args.Get(0).([]responses.AppointmentRow)
	return rows, args.Error(1)
}

func (m *MockDashboardUsecase) GetOverview(ctx context.Context, patientID string) (*responses.PatientOverview, error) {
	args := m.Called(ctx, patientID)
	overview, _ := args.Get(0).(*responses.PatientOverview)
	return overview, args.Error(1)
}

type responseBody struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"status_code"`
	DevMessage string          `json:"dev_message"`
}

func newTestRouter(usecase *MockDashboardUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix: "api",
			Version:        "v1",
			AllowedOrigins: []string{"*"},
			MaxRequests:    1000,
		},
	}

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, internalConfig),
		controllers.NewPatientController(logger, usecase, time.Second),
	)
	return router
}

func serve(t *testing.T, router http.Handler, target string) (*httptest.ResponseRecorder, responseBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var body responseBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return rr, body
}

func TestPatientRouter_Profile(t *testing.T) {
	usecase := new(MockDashboardUsecase)
	router := newTestRouter(usecase)

	usecase.On("GetPatientProfile", mock.Anything, "patient-1").Return(&responses.PatientProfile{
		Summary: responses.PatientSummary{ID: "patient-1", Name: "Ada Lovelace"},
	}, nil)

	rr, body := serve(t, router, "/api/v1/patients/patient-1")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, body.Success)
	assert.Contains(t, string(body.Data), `"Ada Lovelace"`)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"), "request id should be echoed")
	usecase.AssertExpectations(t)
}

func TestPatientRouter_MeUsesDefaultPatient(t *testing.T) {
	usecase := new(MockDashboardUsecase)
	router := newTestRouter(usecase)

	usecase.On("DefaultPatientID").Return("patient-1")
	usecase.On("GetPatientProfile", mock.Anything, "patient-1").Return(&responses.PatientProfile{}, nil)

	rr, _ := serve(t, router, "/api/v1/patients/me")

	assert.Equal(t, http.StatusOK, rr.Code)
	usecase.AssertExpectations(t)
}

func TestPatientRouter_RequestIDPropagation(t *testing.T) {
	usecase := new(MockDashboardUsecase)
	router := newTestRouter(usecase)

	usecase.On("GetOverview", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return hasDeadline && utils.GetRequestID(ctx) == "client-request-1"
	}), "patient-1").Return(&responses.PatientOverview{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/patient-1/overview", nil)
	req.Header.Set("X-Request-ID", "client-request-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "client-request-1", rr.Header().Get("X-Request-ID"))
	usecase.AssertExpectations(t)
}

func TestPatientRouter_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", exceptions.ErrFHIRUnexpectedStatus(404, "Resource Patient/x not found", "GET", "http://fhir.test/Patient/x"), http.StatusNotFound},
		{"server error", exceptions.ErrFHIRUnexpectedStatus(500, "", "GET", "http://fhir.test/Patient/x"), http.StatusBadGateway},
		{"timeout", &exceptions.TransportError{Message: "timeout", Timeout: true}, http.StatusGatewayTimeout},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			usecase := new(MockDashboardUsecase)
			router := newTestRouter(usecase)
			usecase.On("GetMedicalRecords", mock.Anything, "x").Return(nil, tc.err)

			rr, body := serve(t, router, "/api/v1/patients/x/medical-records")

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantStatus, body.StatusCode)
		})
	}
}

func TestPatientRouter_InvalidPatientID(t *testing.T) {
	usecase := new(MockDashboardUsecase)
	router := newTestRouter(usecase)

	rr, body := serve(t, router, "/api/v1/patients/bad%20id/medications")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid patient id", body.Message)
	usecase.AssertNotCalled(t, "GetPatientMedications")
}

func TestPatientRouter_Search(t *testing.T) {
	usecase := new(MockDashboardUsecase)
	router := newTestRouter(usecase)

	usecase.On("SearchPatients", mock.Anything, &requests.SearchPatients{Name: "Ada Lovelace", Count: 5}).
		Return(&responses.PatientSearchResult{Patients: []responses.PatientSummary{{ID: "patient-1"}}}, nil)

	rr, body := serve(t, router, "/api/v1/patients?name=+Ada++Lovelace&count=5")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, body.Success)
	usecase.AssertExpectations(t)

	t.Run("invalid count", func(t *testing.T) {
		rr, body := serve(t, router, "/api/v1/patients?count=many")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid query parameters", body.Message)
	})

	t.Run("count out of range", func(t *testing.T) {
		rr, body := serve(t, router, "/api/v1/patients?count=500")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "count must be at most 100", body.Message)
	})
}

func TestPatientRouter_Appointments(t *testing.T) {
	usecase := new(MockDashboardUsecase)
	router := newTestRouter(usecase)

	usecase.On("GetPatientAppointments", mock.Anything, "patient-1").
		Return([]responses.AppointmentRow{{ID: "appt-1", StatusLabel: "Booked", Upcoming: true}}, nil)

	rr, body := serve(t, router, "/api/v1/patients/patient-1/appointments")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(body.Data), `"appt-1"`)
	usecase.AssertExpectations(t)
}
