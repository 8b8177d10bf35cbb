package fhir_dto

import (
	"github.com/goccy/go-json"
)

// Resource is a FHIR resource kept as decoded JSON. Only resourceType and id
// have a fixed meaning; every other field is reached through the accessors,
// which report whether the field was present with the expected JSON type.
type Resource map[string]any

func NewResource(resourceType string) Resource {
	return Resource{"resourceType": resourceType}
}

func (r Resource) ResourceType() string {
	value, _ := r.String("resourceType")
	return value
}

func (r Resource) ID() string {
	value, _ := r.String("id")
	return value
}

// Lookup walks nested JSON objects along path.
func (r Resource) Lookup(path ...string) (any, bool) {
	if len(path) == 0 || r == nil {
		return nil, false
	}
	var current any = map[string]any(r)
	for _, key := range path {
		object, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = object[key]
		if !ok {
			return nil, false
		}
	}
	return current, current != nil
}

func (r Resource) String(path ...string) (string, bool) {
	value, ok := r.Lookup(path...)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

func (r Resource) Float(path ...string) (float64, bool) {
	value, ok := r.Lookup(path...)
	if !ok {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func (r Resource) Bool(path ...string) (bool, bool) {
	value, ok := r.Lookup(path...)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

func (r Resource) Map(path ...string) (Resource, bool) {
	value, ok := r.Lookup(path...)
	if !ok {
		return nil, false
	}
	object, ok := asObject(value)
	if !ok {
		return nil, false
	}
	return Resource(object), true
}

func (r Resource) Slice(path ...string) ([]any, bool) {
	value, ok := r.Lookup(path...)
	if !ok {
		return nil, false
	}
	items, ok := value.([]any)
	return items, ok
}

// Maps returns the object elements of the array at path, skipping scalars.
func (r Resource) Maps(path ...string) []Resource {
	items, ok := r.Slice(path...)
	if !ok {
		return nil
	}
	objects := make([]Resource, 0, len(items))
	for _, item := range items {
		if object, ok := asObject(item); ok {
			objects = append(objects, Resource(object))
		}
	}
	return objects
}

// DecodeField re-decodes the field at key into target, e.g. a []HumanName.
// It returns false when the field is absent or has an incompatible shape.
func (r Resource) DecodeField(key string, target any) bool {
	value, ok := r[key]
	if !ok || value == nil {
		return false
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, target) == nil
}

func asObject(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case Resource:
		return v, true
	}
	return nil, false
}
