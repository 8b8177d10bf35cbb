package utils

import (
	"ember-emr-service/internal/pkg/dto/requests"
	"strings"
)

func collapseWhiteSpace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

func SanitizeSearchPatientsRequest(input *requests.SearchPatients) {
	input.Name = collapseWhiteSpace(input.Name)
	input.Identifier = strings.TrimSpace(input.Identifier)
	input.BirthDate = strings.TrimSpace(input.BirthDate)
}
