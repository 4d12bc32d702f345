package driver

import (
	"strings"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/errors"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/dart"
	"github.com/teranos/contractgen/typegen/markdown"
	"github.com/teranos/contractgen/typegen/openapi"
	"github.com/teranos/contractgen/typegen/typescript"
)

// Target names an output family.
type Target string

const (
	TargetTypeScript Target = "typescript"
	TargetDart       Target = "dart"
	TargetOpenAPI    Target = "openapi"
	TargetMarkdown   Target = "markdown"
	TargetAll        Target = "all"
)

// AllTargets is every concrete target in generation order.
var AllTargets = []Target{TargetTypeScript, TargetDart, TargetOpenAPI, TargetMarkdown}

// ParseTarget resolves a target name or alias.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "typescript", "ts":
		return TargetTypeScript, nil
	case "dart", "flutter":
		return TargetDart, nil
	case "openapi", "swagger":
		return TargetOpenAPI, nil
	case "markdown", "md":
		return TargetMarkdown, nil
	case "all":
		return TargetAll, nil
	default:
		return "", errors.UnknownTarget(name)
	}
}

// ParseTargets resolves a list of names. An empty list means all targets.
func ParseTargets(names []string) ([]Target, error) {
	targets := make([]Target, 0, len(names))
	for _, name := range names {
		t, err := ParseTarget(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return expandTargets(targets), nil
}

// expandTargets replaces "all" with every target and drops duplicates,
// keeping generation order.
func expandTargets(targets []Target) []Target {
	if len(targets) == 0 {
		return AllTargets
	}
	want := make(map[Target]bool)
	for _, t := range targets {
		if t == TargetAll {
			return AllTargets
		}
		want[t] = true
	}
	var out []Target
	for _, t := range AllTargets {
		if want[t] {
			out = append(out, t)
		}
	}
	return out
}

func newGenerator(cfg *config.Config, t Target) (typegen.Generator, error) {
	switch t {
	case TargetTypeScript:
		return typescript.NewGenerator(cfg), nil
	case TargetDart:
		return dart.NewGenerator(cfg), nil
	case TargetOpenAPI:
		return openapi.NewGenerator(cfg), nil
	case TargetMarkdown:
		return markdown.NewGenerator(cfg), nil
	default:
		return nil, errors.UnknownTarget(string(t))
	}
}
