package routers

import (
	"ember-emr-service/internal/app/delivery/http/controllers"
	"ember-emr-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, patientController *controllers.PatientController) {
	router.Get("/", patientController.SearchPatients)
	router.Get("/me", patientController.GetMyProfile)

	router.Route("/{"+constvars.URLParamPatientID+"}", func(r chi.Router) {
		r.Get("/", patientController.GetPatientProfile)
		r.Get("/overview", patientController.GetOverview)
		r.Get("/medical-records", patientController.GetMedicalRecords)
		r.Get("/medications", patientController.GetMedications)
		r.Get("/appointments", patientController.GetAppointments)
	})
}
