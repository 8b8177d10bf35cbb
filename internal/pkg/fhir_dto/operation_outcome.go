package fhir_dto

import "strings"

type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string          `json:"severity,omitempty"`
	Code        string          `json:"code,omitempty"`
	Diagnostics string          `json:"diagnostics,omitempty"`
	Details     CodeableConcept `json:"details,omitempty"`
}

// Message returns the first human readable issue text.
func (o OperationOutcome) Message() string {
	for _, issue := range o.Issue {
		if text := strings.TrimSpace(issue.Diagnostics); text != "" {
			return text
		}
		if text := strings.TrimSpace(issue.Details.Text); text != "" {
			return text
		}
	}
	return ""
}
