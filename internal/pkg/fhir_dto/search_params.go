package fhir_dto

import (
	"net/url"
	"strings"
)

type SearchParam struct {
	Name  string
	Value string
}

// SearchParams is an ordered set of FHIR search parameters. Names are unique;
// setting an existing name replaces its value without moving it, so the
// encoded query string is stable.
type SearchParams []SearchParam

// NewSearchParams builds params from name/value pairs. A trailing name without
// a value is ignored.
func NewSearchParams(pairs ...string) SearchParams {
	var params SearchParams
	for i := 0; i+1 < len(pairs); i += 2 {
		params = params.Set(pairs[i], pairs[i+1])
	}
	return params
}

func (p SearchParams) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

func (p SearchParams) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Set returns a copy of p with name set to value.
func (p SearchParams) Set(name, value string) SearchParams {
	params := p.Clone()
	for i := range params {
		if params[i].Name == name {
			params[i].Value = value
			return params
		}
	}
	return append(params, SearchParam{Name: name, Value: value})
}

func (p SearchParams) Clone() SearchParams {
	if p == nil {
		return nil
	}
	params := make(SearchParams, len(p))
	copy(params, p)
	return params
}

// MergeSearchParams applies overrides on top of base: a name present in both
// keeps its position in base and takes the override's value, new names are
// appended in override order.
func MergeSearchParams(base, overrides SearchParams) SearchParams {
	params := base.Clone()
	for _, param := range overrides {
		params = params.Set(param.Name, param.Value)
	}
	return params
}

// WithDefaults appends every default whose name is not already in p, in the
// defaults' order. Values already in p always win.
func (p SearchParams) WithDefaults(defaults SearchParams) SearchParams {
	params := p.Clone()
	for _, param := range defaults {
		if !params.Has(param.Name) {
			params = append(params, param)
		}
	}
	return params
}

// Encode renders the params as a query string in their stored order.
func (p SearchParams) Encode() string {
	var builder strings.Builder
	for i, param := range p {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(url.QueryEscape(param.Name))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(param.Value))
	}
	return builder.String()
}
