package fhir_dto

import (
	"ember-emr-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
)

// Bundle wraps a decoded Bundle document. Entries are read from the document
// on demand so the server's payload, including entry order, is never rewritten.
type Bundle struct {
	Resource
}

type BundleEntry struct {
	FullURL    string
	Resource   Resource
	SearchMode string
}

type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

func NewSearchSetBundle(resources ...Resource) *Bundle {
	entries := make([]any, 0, len(resources))
	for _, resource := range resources {
		entries = append(entries, map[string]any{
			"resource": map[string]any(resource),
			"search":   map[string]any{"mode": "match"},
		})
	}
	return &Bundle{Resource: Resource{
		"resourceType": constvars.ResourceBundle,
		"type":         "searchset",
		"total":        float64(len(resources)),
		"entry":        entries,
	}}
}

func (b Bundle) Type() string {
	value, _ := b.String("type")
	return value
}

// Total reports the server-supplied total, which is optional in a searchset.
func (b Bundle) Total() (int, bool) {
	value, ok := b.Float("total")
	if !ok {
		return 0, false
	}
	return int(value), true
}

func (b Bundle) Entries() []BundleEntry {
	rawEntries := b.Maps("entry")
	entries := make([]BundleEntry, 0, len(rawEntries))
	for _, rawEntry := range rawEntries {
		entry := BundleEntry{}
		entry.FullURL, _ = rawEntry.String("fullUrl")
		entry.Resource, _ = rawEntry.Map("resource")
		entry.SearchMode, _ = rawEntry.String("search", "mode")
		entries = append(entries, entry)
	}
	return entries
}

// Resources returns the entry resources in server order; entries without a
// resource are skipped.
func (b Bundle) Resources() []Resource {
	entries := b.Entries()
	resources := make([]Resource, 0, len(entries))
	for _, entry := range entries {
		if entry.Resource != nil {
			resources = append(resources, entry.Resource)
		}
	}
	return resources
}

// ResourcesOfType filters out entries such as _include matches or
// OperationOutcome warnings that do not belong to the searched type.
func (b Bundle) ResourcesOfType(resourceType string) []Resource {
	var resources []Resource
	for _, resource := range b.Resources() {
		if resource.ResourceType() == resourceType {
			resources = append(resources, resource)
		}
	}
	return resources
}

func (b Bundle) Links() []BundleLink {
	var links []BundleLink
	b.DecodeField("link", &links)
	return links
}

func (b Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(b.Resource))
}

func (b *Bundle) UnmarshalJSON(data []byte) error {
	var document map[string]any
	if err := json.Unmarshal(data, &document); err != nil {
		return err
	}
	b.Resource = Resource(document)
	return nil
}
