package utils

import (
	"ember-emr-service/internal/pkg/fhir_dto"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResource(t *testing.T, raw string) fhir_dto.Resource {
	t.Helper()
	var resource fhir_dto.Resource
	require.NoError(t, json.Unmarshal([]byte(raw), &resource))
	return resource
}

func TestFormatPatientName(t *testing.T) {
	t.Run("given and family", func(t *testing.T) {
		patient := mustResource(t, `{"resourceType":"Patient","name":[{"given":["Ada","May"],"family":"Lovelace"}]}`)
		assert.Equal(t, "Ada May Lovelace", FormatPatientName(patient))
	})

	t.Run("family only", func(t *testing.T) {
		patient := mustResource(t, `{"resourceType":"Patient","name":[{"family":"Lovelace"}]}`)
		assert.Equal(t, "Lovelace", FormatPatientName(patient))
	})

	t.Run("text fallback", func(t *testing.T) {
		patient := mustResource(t, `{"resourceType":"Patient","name":[{"text":"Dr Ada"}]}`)
		assert.Equal(t, "Dr Ada", FormatPatientName(patient))
	})

	t.Run("no name", func(t *testing.T) {
		patient := mustResource(t, `{"resourceType":"Patient"}`)
		assert.Equal(t, "Unknown Patient", FormatPatientName(patient))
	})
}

func TestFormatPatientContactDetails(t *testing.T) {
	patient := mustResource(t, `{
		"resourceType":"Patient",
		"address":[{"line":["1 Main St","Unit 2"],"city":"Sydney","state":"NSW","postalCode":"2000","country":"AU"}],
		"telecom":[{"system":"email","value":"ada@example.org"},{"system":"phone","value":"0400 000 000"}]
	}`)

	assert.Equal(t, "1 Main St, Unit 2, Sydney, NSW 2000, AU", FormatPatientAddress(patient))
	assert.Equal(t, "0400 000 000", FormatPatientPhone(patient))
	assert.Equal(t, "ada@example.org", FormatPatientEmail(patient))

	partial := mustResource(t, `{"resourceType":"Patient","address":[{"city":"Perth","country":"AU"}]}`)
	assert.Equal(t, "Perth, AU", FormatPatientAddress(partial))

	empty := mustResource(t, `{"resourceType":"Patient"}`)
	assert.Equal(t, "No address on file", FormatPatientAddress(empty))
	assert.Equal(t, "No phone on file", FormatPatientPhone(empty))
	assert.Equal(t, "No email on file", FormatPatientEmail(empty))
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 34, CalculateAge("1990-03-15", now))
	assert.Equal(t, 33, CalculateAge("1990-03-16", now))
	assert.Equal(t, 33, CalculateAge("1990-12-01", now))
	assert.Equal(t, 0, CalculateAge("", now))
	assert.Equal(t, 0, CalculateAge("not-a-date", now))
	assert.Equal(t, 0, CalculateAge("2030-01-01", now))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 March 2024", FormatDate("2024-03-15"))
	assert.Equal(t, "March 15, 2024", FormatDateInLocale("2024-03-15", "en-US"))
	assert.Equal(t, "", FormatDate(""))
	assert.Equal(t, "sometime", FormatDate("sometime"))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "15 Mar 2024, 02:30 pm", FormatDateTime("2024-03-15T14:30:00+11:00"))
	assert.Equal(t, "Mar 15, 2024, 02:30 PM", FormatDateTimeInLocale("2024-03-15T14:30:00Z", "en-US"))
	assert.Equal(t, "", FormatDateTime(""))
	assert.Equal(t, "later", FormatDateTime("later"))
}

func TestGetCodingDisplay(t *testing.T) {
	assert.Equal(t, "", GetCodingDisplay(nil))
	assert.Equal(t, "Hypertension", GetCodingDisplay([]fhir_dto.Coding{{Code: "38341003", Display: "Hypertension"}}))
	assert.Equal(t, "38341003", GetCodingDisplay([]fhir_dto.Coding{{Code: "38341003"}}))
}

func TestFormatObservationValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"quantity with unit", `{"valueQuantity":{"value":72,"unit":"beats/min"}}`, "72 beats/min"},
		{"quantity with code", `{"valueQuantity":{"value":36.6,"code":"Cel"}}`, "36.6 Cel"},
		{"quantity zero", `{"valueQuantity":{"value":0,"unit":"mg"}}`, "0 mg"},
		{"string", `{"valueString":"Negative"}`, "Negative"},
		{"concept text", `{"valueCodeableConcept":{"text":"Positive"}}`, "Positive"},
		{"concept coding", `{"valueCodeableConcept":{"coding":[{"code":"POS","display":"Positive"}]}}`, "Positive"},
		{"concept empty", `{"valueCodeableConcept":{}}`, "Coded value"},
		{"boolean true", `{"valueBoolean":true}`, "Yes"},
		{"boolean false", `{"valueBoolean":false}`, "No"},
		{"nothing", `{"resourceType":"Observation"}`, "No value"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatObservationValue(mustResource(t, tc.raw)))
		})
	}
}

func TestConceptDisplays(t *testing.T) {
	condition := mustResource(t, `{"code":{"coding":[{"code":"44054006","display":"Diabetes"}]}}`)
	assert.Equal(t, "Diabetes", GetConditionDisplay(condition))
	assert.Equal(t, "Unknown condition", GetConditionDisplay(mustResource(t, `{}`)))

	medication := mustResource(t, `{"medicationCodeableConcept":{"text":"Metformin 500mg"}}`)
	assert.Equal(t, "Metformin 500mg", GetMedicationDisplay(medication))
	assert.Equal(t, "Unknown medication", GetMedicationDisplay(mustResource(t, `{}`)))

	appointment := mustResource(t, `{"appointmentType":{"coding":[{"code":"FOLLOWUP"}]}}`)
	assert.Equal(t, "FOLLOWUP", GetAppointmentType(appointment))
	assert.Equal(t, "General appointment", GetAppointmentType(mustResource(t, `{}`)))
}

func TestGetAppointmentStatus(t *testing.T) {
	assert.Equal(t, "Completed", GetAppointmentStatus(mustResource(t, `{"status":"fulfilled"}`)))
	assert.Equal(t, "No Show", GetAppointmentStatus(mustResource(t, `{"status":"noshow"}`)))
	assert.Equal(t, "waitlist", GetAppointmentStatus(mustResource(t, `{"status":"waitlist"}`)))
}

func TestGetPatientIdentifier(t *testing.T) {
	patient := mustResource(t, `{"identifier":[{"system":"urn:a","value":"A-1"},{"system":"urn:mrn","value":"MRN-9"}]}`)

	assert.Equal(t, "A-1", GetPatientIdentifier(patient, ""))
	assert.Equal(t, "MRN-9", GetPatientIdentifier(patient, "urn:mrn"))
	assert.Equal(t, "A-1", GetPatientIdentifier(patient, "urn:missing"))
	assert.Equal(t, "", GetPatientIdentifier(mustResource(t, `{}`), ""))
}

func TestSortByDate(t *testing.T) {
	older := fhir_dto.Resource{"id": "older", "effectiveDateTime": "2023-01-01T00:00:00Z"}
	newer := fhir_dto.Resource{"id": "newer", "effectiveDateTime": "2024-01-01T00:00:00Z"}
	undated := fhir_dto.Resource{"id": "undated"}
	input := []fhir_dto.Resource{older, undated, newer}

	sorted := SortByDate(input, "")

	require.Len(t, sorted, 3)
	assert.Equal(t, "newer", sorted[0].ID())
	assert.Equal(t, "older", sorted[1].ID())
	assert.Equal(t, "undated", sorted[2].ID())
	assert.Equal(t, "older", input[0].ID(), "input must not be reordered")

	byDate := SortByDate([]fhir_dto.Resource{
		{"id": "a", "date": "2024-02-01"},
		{"id": "b", "date": "2024-03-01"},
	}, "date")
	assert.Equal(t, "b", byDate[0].ID())
}

func TestStatusVariants(t *testing.T) {
	assert.Equal(t, "danger", ConditionStatusVariant("active"))
	assert.Equal(t, "success", ConditionStatusVariant("resolved"))
	assert.Equal(t, "secondary", ConditionStatusVariant("inactive"))
	assert.Equal(t, "warning", ConditionStatusVariant("remission"))

	assert.Equal(t, "success", ObservationStatusVariant("final"))
	assert.Equal(t, "warning", ObservationStatusVariant("preliminary"))
	assert.Equal(t, "info", ObservationStatusVariant("amended"))
	assert.Equal(t, "secondary", ObservationStatusVariant("registered"))
}

func TestConditionClinicalStatus(t *testing.T) {
	condition := mustResource(t, `{"clinicalStatus":{"coding":[{"code":"active"}]}}`)
	assert.Equal(t, "active", ConditionClinicalStatus(condition))
	assert.Equal(t, "", ConditionClinicalStatus(mustResource(t, `{}`)))
}

func TestFormatDosage(t *testing.T) {
	withText := mustResource(t, `{"dosageInstruction":[{"text":"One tablet daily"}]}`)
	assert.Equal(t, "One tablet daily", FormatDosage(withText))

	structured := mustResource(t, `{"dosageInstruction":[{
		"doseAndRate":[{"doseQuantity":{"value":500,"unit":"mg"}}],
		"timing":{"repeat":{"frequency":2,"period":1,"periodUnit":"d"}},
		"route":{"coding":[{"display":"Oral"}]}
	}]}`)
	assert.Equal(t, "500 mg 2 time(s) every 1 d - Oral", FormatDosage(structured))

	assert.Equal(t, "See instructions", FormatDosage(mustResource(t, `{}`)))
	assert.Equal(t, "See instructions", FormatDosage(mustResource(t, `{"dosageInstruction":[{}]}`)))
}

func TestMedicationAndAppointmentVariants(t *testing.T) {
	assert.Equal(t, "success", MedicationStatusVariant("Active"))
	assert.Equal(t, "dark", MedicationStatusVariant("stopped"))
	assert.Equal(t, "light", MedicationStatusVariant("unknown"))

	assert.Equal(t, "success", AppointmentStatusVariant("booked"))
	assert.Equal(t, "primary", AppointmentStatusVariant("fulfilled"))
	assert.Equal(t, "dark", AppointmentStatusVariant("noshow"))
	assert.Equal(t, "light", AppointmentStatusVariant("waitlist"))
}
