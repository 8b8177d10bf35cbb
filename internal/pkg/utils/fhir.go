package utils

import (
	"ember-emr-service/internal/pkg/constvars"
	"ember-emr-service/internal/pkg/fhir_dto"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FormatPatientName joins the given names and family name of the first
// HumanName, falling back to its text.
func FormatPatientName(patient fhir_dto.Resource) string {
	var names []fhir_dto.HumanName
	if !patient.DecodeField("name", &names) || len(names) == 0 {
		return constvars.DisplayUnknownPatient
	}

	name := names[0]
	fullname := strings.TrimSpace(strings.Join(name.Given, " ") + " " + name.Family)
	if fullname == "" {
		fullname = strings.TrimSpace(name.Text)
	}
	if fullname == "" {
		return constvars.DisplayUnknownPatient
	}
	return fullname
}

func FormatPatientAddress(patient fhir_dto.Resource) string {
	var addresses []fhir_dto.Address
	if !patient.DecodeField("address", &addresses) || len(addresses) == 0 {
		return constvars.DisplayNoAddress
	}

	address := addresses[0]
	parts := []string{
		strings.Join(address.Line, ", "),
		address.City,
		strings.TrimSpace(address.State + " " + address.PostalCode),
		address.Country,
	}

	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			formatted = append(formatted, part)
		}
	}
	if len(formatted) == 0 {
		return constvars.DisplayNoAddress
	}
	return strings.Join(formatted, ", ")
}

func FormatPatientPhone(patient fhir_dto.Resource) string {
	if value := findTelecom(patient, constvars.FhirTelecomSystemPhone); value != "" {
		return value
	}
	return constvars.DisplayNoPhone
}

func FormatPatientEmail(patient fhir_dto.Resource) string {
	if value := findTelecom(patient, constvars.FhirTelecomSystemEmail); value != "" {
		return value
	}
	return constvars.DisplayNoEmail
}

func findTelecom(resource fhir_dto.Resource, system string) string {
	var telecoms []fhir_dto.ContactPoint
	if !resource.DecodeField("telecom", &telecoms) {
		return ""
	}
	for _, telecom := range telecoms {
		if telecom.System == system {
			return telecom.Value
		}
	}
	return ""
}

// CalculateAge returns the completed years between birthDate and now.
// Empty or unparseable dates yield 0.
func CalculateAge(birthDate string, now time.Time) int {
	if birthDate == "" {
		return 0
	}

	dob, ok := ParseFHIRDate(birthDate)
	if !ok {
		return 0
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

var fhirDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseFHIRDate accepts the FHIR date, dateTime and instant forms.
func ParseFHIRDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range fhirDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a long date in the default display locale. An empty
// value yields an empty string and an unparseable one is returned as is.
func FormatDate(value string) string {
	return FormatDateInLocale(value, constvars.DisplayDefaultLocale)
}

func FormatDateInLocale(value, locale string) string {
	if value == "" {
		return ""
	}
	parsed, ok := ParseFHIRDate(value)
	if !ok {
		return value
	}
	if isUSLocale(locale) {
		return parsed.Format("January 2, 2006")
	}
	return parsed.Format("2 January 2006")
}

func FormatDateTime(value string) string {
	return FormatDateTimeInLocale(value, constvars.DisplayDefaultLocale)
}

func FormatDateTimeInLocale(value, locale string) string {
	if value == "" {
		return ""
	}
	parsed, ok := ParseFHIRDate(value)
	if !ok {
		return value
	}
	if isUSLocale(locale) {
		return parsed.Format("Jan 2, 2006, 03:04 PM")
	}
	return parsed.Format("2 Jan 2006, 03:04 pm")
}

func isUSLocale(locale string) bool {
	return strings.EqualFold(locale, "en-US")
}

// GetCodingDisplay prefers the display of the first coding, then its code.
func GetCodingDisplay(codings []fhir_dto.Coding) string {
	if len(codings) == 0 {
		return ""
	}
	if codings[0].Display != "" {
		return codings[0].Display
	}
	return codings[0].Code
}

// GetConceptDisplay resolves the text of the CodeableConcept at key, then its first coding.
func GetConceptDisplay(resource fhir_dto.Resource, key string) string {
	var concept fhir_dto.CodeableConcept
	if !resource.DecodeField(key, &concept) {
		return ""
	}
	if concept.Text != "" {
		return concept.Text
	}
	return GetCodingDisplay(concept.Coding)
}

func FormatObservationValue(observation fhir_dto.Resource) string {
	if observation == nil {
		return constvars.DisplayNoValue
	}

	if quantity, ok := observation.Map("valueQuantity"); ok {
		unit, _ := quantity.String("unit")
		if unit == "" {
			unit, _ = quantity.String("code")
		}
		value, hasValue := quantity.Float("value")
		if !hasValue {
			return strings.TrimSpace(unit)
		}
		return strings.TrimSpace(strconv.FormatFloat(value, 'f', -1, 64) + " " + unit)
	}

	if value, ok := observation.String("valueString"); ok && value != "" {
		return value
	}

	if _, ok := observation.Map("valueCodeableConcept"); ok {
		if display := GetConceptDisplay(observation, "valueCodeableConcept"); display != "" {
			return display
		}
		return constvars.DisplayCodedValue
	}

	if value, ok := observation.Bool("valueBoolean"); ok {
		if value {
			return constvars.DisplayObservationValueYes
		}
		return constvars.DisplayObservationValueNo
	}

	if value, ok := observation.Float("valueInteger"); ok {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}

	return constvars.DisplayNoValue
}

func GetConditionDisplay(condition fhir_dto.Resource) string {
	if display := GetConceptDisplay(condition, "code"); display != "" {
		return display
	}
	return constvars.DisplayUnknownCondition
}

func GetMedicationDisplay(medicationRequest fhir_dto.Resource) string {
	if display := GetConceptDisplay(medicationRequest, "medicationCodeableConcept"); display != "" {
		return display
	}
	if reference, ok := medicationRequest.String("medicationReference", "display"); ok && reference != "" {
		return reference
	}
	return constvars.DisplayUnknownMedication
}

var appointmentStatusLabels = map[string]string{
	constvars.FhirAppointmentStatusProposed:       "Proposed",
	constvars.FhirAppointmentStatusPending:        "Pending",
	constvars.FhirAppointmentStatusBooked:         "Booked",
	constvars.FhirAppointmentStatusArrived:        "Arrived",
	constvars.FhirAppointmentStatusFulfilled:      "Completed",
	constvars.FhirAppointmentStatusCancelled:      "Cancelled",
	constvars.FhirAppointmentStatusNoShow:         "No Show",
	constvars.FhirAppointmentStatusEnteredInError: "Error",
}

// GetAppointmentStatus returns the label for known statuses and the raw
// status otherwise.
func GetAppointmentStatus(appointment fhir_dto.Resource) string {
	status, _ := appointment.String("status")
	if label, ok := appointmentStatusLabels[status]; ok {
		return label
	}
	return status
}

func GetAppointmentType(appointment fhir_dto.Resource) string {
	if display := GetConceptDisplay(appointment, "appointmentType"); display != "" {
		return display
	}
	return constvars.DisplayGeneralAppointment
}

// GetPatientIdentifier returns the value of the identifier with the given
// system, or of the first identifier when system is empty or unmatched.
func GetPatientIdentifier(patient fhir_dto.Resource, system string) string {
	var identifiers []fhir_dto.Identifier
	if !patient.DecodeField("identifier", &identifiers) || len(identifiers) == 0 {
		return ""
	}

	identifier := identifiers[0]
	if system != "" {
		for _, candidate := range identifiers {
			if candidate.System == system {
				identifier = candidate
				break
			}
		}
	}
	return identifier.Value
}

// SortByDate returns a copy of resources ordered newest first by the date in
// field. Resources without a parseable date sort last; ties keep their order.
func SortByDate(resources []fhir_dto.Resource, field string) []fhir_dto.Resource {
	if field == "" {
		field = constvars.DisplayDefaultDateTimeField
	}

	sorted := make([]fhir_dto.Resource, len(resources))
	copy(sorted, resources)

	keys := make([]time.Time, len(sorted))
	for i, resource := range sorted {
		value, _ := resource.String(field)
		keys[i], _ = ParseFHIRDate(value)
	}

	indexes := make([]int, len(sorted))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return keys[indexes[a]].After(keys[indexes[b]])
	})

	result := make([]fhir_dto.Resource, len(sorted))
	for i, index := range indexes {
		result[i] = sorted[index]
	}
	return result
}

func ConditionStatusVariant(clinicalStatus string) string {
	switch clinicalStatus {
	case "active":
		return constvars.BadgeVariantDanger
	case "resolved":
		return constvars.BadgeVariantSuccess
	case "inactive":
		return constvars.BadgeVariantSecondary
	default:
		return constvars.BadgeVariantWarning
	}
}

func ObservationStatusVariant(status string) string {
	switch status {
	case "final":
		return constvars.BadgeVariantSuccess
	case "preliminary":
		return constvars.BadgeVariantWarning
	case "amended":
		return constvars.BadgeVariantInfo
	default:
		return constvars.BadgeVariantSecondary
	}
}

// ConditionClinicalStatus reads clinicalStatus.coding[0].code.
func ConditionClinicalStatus(condition fhir_dto.Resource) string {
	var concept fhir_dto.CodeableConcept
	if !condition.DecodeField("clinicalStatus", &concept) || len(concept.Coding) == 0 {
		return ""
	}
	return concept.Coding[0].Code
}

func MedicationStatusVariant(status string) string {
	switch strings.ToLower(status) {
	case "active":
		return constvars.BadgeVariantSuccess
	case "on-hold":
		return constvars.BadgeVariantWarning
	case "cancelled":
		return constvars.BadgeVariantDanger
	case "completed":
		return constvars.BadgeVariantSecondary
	case "stopped":
		return constvars.BadgeVariantDark
	case "draft":
		return constvars.BadgeVariantInfo
	default:
		return constvars.BadgeVariantLight
	}
}

// FormatDosage renders the first dosageInstruction of a MedicationRequest.
func FormatDosage(medicationRequest fhir_dto.Resource) string {
	instructions := medicationRequest.Maps("dosageInstruction")
	if len(instructions) == 0 {
		return constvars.DisplaySeeInstructions
	}

	dosage := instructions[0]
	if text, ok := dosage.String("text"); ok && text != "" {
		return text
	}

	var parts []string
	if doses := dosage.Maps("doseAndRate"); len(doses) > 0 {
		if dose, ok := doses[0].Map("doseQuantity"); ok {
			value, _ := dose.Float("value")
			unit, _ := dose.String("unit")
			if unit == "" {
				unit, _ = dose.String("code")
			}
			parts = append(parts, strings.TrimSpace(strconv.FormatFloat(value, 'f', -1, 64)+" "+unit))
		}
	}

	if repeat, ok := dosage.Map("timing", "repeat"); ok {
		frequency, hasFrequency := repeat.Float("frequency")
		period, hasPeriod := repeat.Float("period")
		if hasFrequency && hasPeriod {
			unit, _ := repeat.String("periodUnit")
			if unit == "" {
				unit = "day(s)"
			}
			parts = append(parts, strconv.FormatFloat(frequency, 'f', -1, 64)+" time(s) every "+
				strconv.FormatFloat(period, 'f', -1, 64)+" "+unit)
		}
	}

	instruction := strings.Join(parts, " ")
	if route := GetConceptDisplay(dosage, "route"); route != "" {
		instruction = strings.TrimSpace(instruction + " - " + route)
	}
	if instruction == "" {
		return constvars.DisplaySeeInstructions
	}
	return instruction
}

func AppointmentStatusVariant(status string) string {
	switch strings.ToLower(status) {
	case constvars.FhirAppointmentStatusBooked:
		return constvars.BadgeVariantSuccess
	case constvars.FhirAppointmentStatusPending:
		return constvars.BadgeVariantWarning
	case constvars.FhirAppointmentStatusArrived:
		return constvars.BadgeVariantInfo
	case constvars.FhirAppointmentStatusFulfilled:
		return constvars.BadgeVariantPrimary
	case constvars.FhirAppointmentStatusCancelled:
		return constvars.BadgeVariantDanger
	case constvars.FhirAppointmentStatusNoShow:
		return constvars.BadgeVariantDark
	case constvars.FhirAppointmentStatusProposed:
		return constvars.BadgeVariantSecondary
	default:
		return constvars.BadgeVariantLight
	}
}
