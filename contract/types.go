// Package contract holds the intermediate representation of a service
// contract and the line-oriented parser that builds it from .api source.
package contract

import (
	"regexp"
)

// DefaultGroup labels endpoints declared without a server group.
const DefaultGroup = "default"

// Type is a structured type declared in a contract.
type Type struct {
	Name        string   `json:"name"`
	Fields      []Field  `json:"fields"`
	Description string   `json:"description,omitempty"`
	Source      Position `json:"source"`
}

// Field is one member of a Type. JSONName is the key emitted in every target;
// SourceName is kept for traceability only.
type Field struct {
	SourceName  string   `json:"source_name"`
	SourceType  string   `json:"source_type"`
	JSONName    string   `json:"json_name"`
	Optional    bool     `json:"optional"`
	Description string   `json:"description,omitempty"`
	Source      Position `json:"source"`
}

// Endpoint is one route declared inside a service block.
type Endpoint struct {
	Name         string   `json:"name"`
	Method       string   `json:"method"`
	Path         string   `json:"path"`
	Group        string   `json:"group"`
	RequestType  string   `json:"request_type,omitempty"`
	ResponseType string   `json:"response_type,omitempty"`
	RequiresAuth bool     `json:"requires_auth"`
	Description  string   `json:"description"`
	Source       Position `json:"source"`
}

// Position locates a construct in its contract source.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// Shape classifies an endpoint by which bodies it carries. Every emitter
// dispatches on it instead of re-deriving the request/response combination.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeRequestOnly
	ShapeResponseOnly
	ShapeRequestResponse
)

func (s Shape) String() string {
	switch s {
	case ShapeRequestResponse:
		return "request+response"
	case ShapeRequestOnly:
		return "request"
	case ShapeResponseOnly:
		return "response"
	default:
		return "none"
	}
}

// Shape returns the endpoint's body shape.
func (e Endpoint) Shape() Shape {
	switch {
	case e.RequestType != "" && e.ResponseType != "":
		return ShapeRequestResponse
	case e.RequestType != "":
		return ShapeRequestOnly
	case e.ResponseType != "":
		return ShapeResponseOnly
	default:
		return ShapeNone
	}
}

// HasRequest reports whether the endpoint takes a request body.
func (s Shape) HasRequest() bool {
	return s == ShapeRequestOnly || s == ShapeRequestResponse
}

// HasResponse reports whether the endpoint returns a typed response.
func (s Shape) HasResponse() bool {
	return s == ShapeResponseOnly || s == ShapeRequestResponse
}

var pathParamPattern = regexp.MustCompile(`:(\w+)`)

// PathParams returns the :name markers of path in order of appearance.
func PathParams(path string) []string {
	matches := pathParamPattern.FindAllStringSubmatch(path, -1)
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		params = append(params, m[1])
	}
	return params
}

// OpenAPIPath rewrites :name markers to {name}.
func OpenAPIPath(path string) string {
	return pathParamPattern.ReplaceAllString(path, "{$1}")
}

// Document is the parsed form of one or more contract files.
type Document struct {
	Types       []Type       `json:"types"`
	Endpoints   []Endpoint   `json:"endpoints"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Merge appends other's records after d's, preserving file order.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	d.Types = append(d.Types, other.Types...)
	d.Endpoints = append(d.Endpoints, other.Endpoints...)
	d.Diagnostics = append(d.Diagnostics, other.Diagnostics...)
}

// LookupType returns the type declared with name.
func (d *Document) LookupType(name string) (Type, bool) {
	for _, t := range d.Types {
		if t.Name == name {
			return t, true
		}
	}
	return Type{}, false
}

// AuthEndpoints counts endpoints that require authentication.
func (d *Document) AuthEndpoints() int {
	n := 0
	for _, e := range d.Endpoints {
		if e.RequiresAuth {
			n++
		}
	}
	return n
}

// Groups returns the distinct endpoint groups in first-seen order.
func (d *Document) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range d.Endpoints {
		if !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	return groups
}

// EndpointsByGroup partitions endpoints by group, keeping declaration order
// inside each group. Iterate with Groups for a stable group order.
func (d *Document) EndpointsByGroup() map[string][]Endpoint {
	byGroup := make(map[string][]Endpoint)
	for _, e := range d.Endpoints {
		byGroup[e.Group] = append(byGroup[e.Group], e)
	}
	return byGroup
}

// UsedTypes returns request and response type names in first-seen order.
func UsedTypes(endpoints []Endpoint) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, e := range endpoints {
		add(e.RequestType)
		add(e.ResponseType)
	}
	return names
}
