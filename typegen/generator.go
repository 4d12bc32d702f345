// Package typegen holds the plumbing shared by the contract emitters:
// the Generator interface, generated-file headers, output writing and the
// drift check used by `contractgen check`.
package typegen

import (
	"time"

	"github.com/teranos/contractgen/contract"
)

// Generator defines the interface for target-language emitters.
// Each target (TypeScript, Dart, OpenAPI, Markdown) implements it.
type Generator interface {
	// Language returns the target name (e.g., "typescript", "dart")
	Language() string

	// Generate renders the document into one or more artifacts
	Generate(doc *contract.Document, opts Options) ([]Artifact, error)
}

// Options carries per-run settings shared by every generator.
type Options struct {
	// Timestamp is stamped into every generated header
	Timestamp string
}

// Artifact is one generated file held in memory until written.
type Artifact struct {
	Path    string `json:"path"`
	Content []byte `json:"-"`
	Target  string `json:"target"`
	// Summary describes what the file holds, e.g. "4 types"
	Summary string `json:"summary,omitempty"`
}

// Clock returns the current time; tests replace it for stable output.
type Clock func() time.Time

// NewOptions builds Options stamped with the clock's current time.
func NewOptions(clock Clock) Options {
	if clock == nil {
		clock = time.Now
	}
	return Options{Timestamp: GetTimestamp(clock())}
}

// GetTimestamp formats a generation timestamp (UTC, RFC 3339).
func GetTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
