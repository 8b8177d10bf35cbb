package constvars

const (
	ResponseUnknown = "unknown"

	GetPatientProfileSuccessMessage      = "get patient profile successfully"
	SearchPatientsSuccessMessage         = "search patients successfully"
	GetPatientOverviewSuccessMessage     = "get patient overview successfully"
	GetMedicalRecordsSuccessMessage      = "get medical records successfully"
	GetPatientMedicationsSuccessMessage  = "get patient medications successfully"
	GetPatientAppointmentsSuccessMessage = "get patient appointments successfully"
)
