package fhir_dto

import "strings"

func NewReference(resourceType, id string) Reference {
	return Reference{Reference: resourceType + "/" + id}
}

// ReferenceID returns the last path segment of a literal reference.
func ReferenceID(reference Reference) string {
	if reference.Reference == "" {
		return ""
	}
	parts := strings.Split(reference.Reference, "/")
	return parts[len(parts)-1]
}
