package fhir_dto_test

import (
	"ember-emr-service/internal/pkg/fhir_dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchsetJSON = `{
	"resourceType": "Bundle",
	"type": "searchset",
	"total": 3,
	"link": [{"relation": "next", "url": "http://fhir.example.org/Patient?page=2"}],
	"entry": [
		{"fullUrl": "http://fhir.example.org/Patient/2", "resource": {"resourceType": "Patient", "id": "2"}, "search": {"mode": "match"}},
		{"fullUrl": "http://fhir.example.org/Practitioner/9", "resource": {"resourceType": "Practitioner", "id": "9"}, "search": {"mode": "include"}},
		{"fullUrl": "http://fhir.example.org/Patient/1"},
		{"resource": {"resourceType": "Patient", "id": "1"}, "search": {"mode": "match"}}
	]
}`

func TestBundle_Decode(t *testing.T) {
	var bundle fhir_dto.Bundle
	require.NoError(t, json.Unmarshal([]byte(searchsetJSON), &bundle))

	assert.Equal(t, "searchset", bundle.Type())

	total, ok := bundle.Total()
	assert.True(t, ok)
	assert.Equal(t, 3, total)

	entries := bundle.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "http://fhir.example.org/Patient/2", entries[0].FullURL)
	assert.Equal(t, "include", entries[1].SearchMode)
	assert.Nil(t, entries[2].Resource)

	resources := bundle.Resources()
	require.Len(t, resources, 3)
	assert.Equal(t, []string{"2", "9", "1"}, []string{resources[0].ID(), resources[1].ID(), resources[2].ID()})

	patients := bundle.ResourcesOfType("Patient")
	require.Len(t, patients, 2)
	assert.Equal(t, "2", patients[0].ID())

	assert.Equal(t, []fhir_dto.BundleLink{{Relation: "next", URL: "http://fhir.example.org/Patient?page=2"}}, bundle.Links())
}

func TestBundle_WithoutTotalOrEntries(t *testing.T) {
	var bundle fhir_dto.Bundle
	require.NoError(t, json.Unmarshal([]byte(`{"resourceType":"Bundle","type":"searchset"}`), &bundle))

	_, ok := bundle.Total()
	assert.False(t, ok)
	assert.Empty(t, bundle.Resources())
	assert.Empty(t, bundle.Links())
}

func TestBundle_MarshalKeepsDocument(t *testing.T) {
	var bundle fhir_dto.Bundle
	require.NoError(t, json.Unmarshal([]byte(searchsetJSON), &bundle))

	data, err := json.Marshal(bundle)
	require.NoError(t, err)
	assert.JSONEq(t, searchsetJSON, string(data))
}

func TestNewSearchSetBundle(t *testing.T) {
	bundle := fhir_dto.NewSearchSetBundle(fhir_dto.NewResource("Condition"), fhir_dto.Resource{"resourceType": "Condition", "id": "c2"})

	total, ok := bundle.Total()
	assert.True(t, ok)
	assert.Equal(t, 2, total)
	assert.Len(t, bundle.ResourcesOfType("Condition"), 2)
	assert.Equal(t, "c2", bundle.Resources()[1].ID())
}
