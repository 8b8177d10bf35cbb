package constvars

const (
	URLParamPatientID = "patientID"
)

const (
	URLQueryParamName       = "name"
	URLQueryParamIdentifier = "identifier"
	URLQueryParamBirthdate  = "birthdate"
	URLQueryParamCount      = "count"
)
