package contract

import (
	"fmt"
)

// Diagnostic records a contract line the parser skipped.
type Diagnostic struct {
	Source  Position `json:"source"`
	Text    string   `json:"text"`
	Message string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %q", d.Source.File, d.Source.Line, d.Message, d.Text)
}

// Reference is a type name used by an endpoint or field that no parsed Type
// declares. Emitters still write the name; the consumer's compiler is the one
// that fails.
type Reference struct {
	Name   string   `json:"name"`
	From   string   `json:"from"`
	Source Position `json:"source"`
}

func (r Reference) String() string {
	return fmt.Sprintf("%s:%d: %s references undeclared type %s", r.Source.File, r.Source.Line, r.From, r.Name)
}

// DanglingReferences lists type names referenced by endpoints or fields that
// are neither declared in d nor accepted by builtin.
func (d *Document) DanglingReferences(builtin func(string) bool) []Reference {
	declared := make(map[string]bool, len(d.Types))
	for _, t := range d.Types {
		declared[t.Name] = true
	}

	var refs []Reference
	check := func(name, from string, pos Position) {
		if name == "" || declared[name] || (builtin != nil && builtin(name)) {
			return
		}
		refs = append(refs, Reference{Name: name, From: from, Source: pos})
	}

	for _, t := range d.Types {
		for _, f := range t.Fields {
			check(baseName(f.SourceType), t.Name+"."+f.JSONName, f.Source)
		}
	}
	for _, e := range d.Endpoints {
		check(baseName(e.RequestType), e.Name, e.Source)
		check(baseName(e.ResponseType), e.Name, e.Source)
	}
	return refs
}

// baseName returns the innermost named type of expr, or "" when expr is empty.
func baseName(expr string) string {
	if expr == "" {
		return ""
	}
	return ParseTypeExpr(expr).BaseName()
}
