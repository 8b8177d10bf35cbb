package constvars

const (
	ResourcePatient           = "Patient"
	ResourceObservation       = "Observation"
	ResourceCondition         = "Condition"
	ResourceMedicationRequest = "MedicationRequest"
	ResourceAppointment       = "Appointment"
	ResourceDiagnosticReport  = "DiagnosticReport"
	ResourceImmunization      = "Immunization"
	ResourceBundle            = "Bundle"
	ResourceOperationOutcome  = "OperationOutcome"
)

const (
	FhirSearchParamPatient        = "patient"
	FhirSearchParamSort           = "_sort"
	FhirSearchParamCount          = "_count"
	FhirSearchParamInclude        = "_include"
	FhirSearchParamStatus         = "status"
	FhirSearchParamClinicalStatus = "clinical-status"
	FhirSearchParamName           = "name"
	FhirSearchParamIdentifier     = "identifier"
	FhirSearchParamBirthdate      = "birthdate"
)

const (
	FhirTelecomSystemPhone = "phone"
	FhirTelecomSystemEmail = "email"
)

const (
	FhirAppointmentStatusProposed       = "proposed"
	FhirAppointmentStatusPending        = "pending"
	FhirAppointmentStatusBooked         = "booked"
	FhirAppointmentStatusArrived        = "arrived"
	FhirAppointmentStatusFulfilled      = "fulfilled"
	FhirAppointmentStatusCancelled      = "cancelled"
	FhirAppointmentStatusNoShow         = "noshow"
	FhirAppointmentStatusEnteredInError = "entered-in-error"
)

const (
	FhirDefaultBaseURL   = "http://localhost:8080/fhir"
	FhirDefaultPatientID = "patient-1"
	FhirVersionR4        = "R4"

	FhirDefaultTimeoutInMillis            = 10000
	FhirDevelopmentTimeoutInMillis        = 30000
	FhirDefaultRecentItemsCount           = 5
	FhirDefaultPatientSearchCount         = 20
	FhirObservationDefaultSearchCountText = "50"
)

const (
	DisplayUnknownPatient       = "Unknown Patient"
	DisplayNoAddress            = "No address on file"
	DisplayNoPhone              = "No phone on file"
	DisplayNoEmail              = "No email on file"
	DisplayNoValue              = "No value"
	DisplayCodedValue           = "Coded value"
	DisplayUnknownCondition     = "Unknown condition"
	DisplayUnknownMedication    = "Unknown medication"
	DisplayGeneralAppointment   = "General appointment"
	DisplayObservationValueYes  = "Yes"
	DisplayObservationValueNo   = "No"
	DisplayDefaultLocale        = "en-AU"
	DisplayDefaultDateTimeField = "effectiveDateTime"
	DisplaySeeInstructions      = "See instructions"
)

const (
	BadgeVariantDanger    = "danger"
	BadgeVariantSuccess   = "success"
	BadgeVariantSecondary = "secondary"
	BadgeVariantWarning   = "warning"
	BadgeVariantInfo      = "info"
	BadgeVariantPrimary   = "primary"
	BadgeVariantDark      = "dark"
	BadgeVariantLight     = "light"
)
