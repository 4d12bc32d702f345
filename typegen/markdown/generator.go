// Package markdown renders a contract as a browsable API reference: an index,
// one page per endpoint group and a page of type definitions.
package markdown

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/typescript"
	"github.com/teranos/contractgen/typegen/util"
)

// Generator emits README.md, types.md and one page per group.
type Generator struct {
	outputDir string
	title     string
}

// NewGenerator creates a markdown generator. The OpenAPI title doubles as
// the reference title.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		outputDir: cfg.Resolve(cfg.Markdown.OutputDir),
		title:     cfg.OpenAPI.Title,
	}
}

// Language returns the target name.
func (g *Generator) Language() string {
	return "markdown"
}

// Generate renders every page of the reference.
func (g *Generator) Generate(doc *contract.Document, opts typegen.Options) ([]typegen.Artifact, error) {
	byGroup := doc.EndpointsByGroup()
	groups := doc.Groups()

	artifacts := []typegen.Artifact{{
		Path:    filepath.Join(g.outputDir, "README.md"),
		Content: []byte(g.generateIndex(doc, groups, byGroup, opts.Timestamp)),
		Target:  g.Language(),
		Summary: fmt.Sprintf("%d groups", len(groups)),
	}}

	for _, group := range groups {
		artifacts = append(artifacts, typegen.Artifact{
			Path:    filepath.Join(g.outputDir, groupToFilename(group)),
			Content: []byte(generateGroupFile(doc, group, byGroup[group], opts.Timestamp)),
			Target:  g.Language(),
			Summary: fmt.Sprintf("%d endpoints", len(byGroup[group])),
		})
	}

	artifacts = append(artifacts, typegen.Artifact{
		Path:    filepath.Join(g.outputDir, "types.md"),
		Content: []byte(generateTypesFile(doc, opts.Timestamp)),
		Target:  g.Language(),
		Summary: fmt.Sprintf("%d types", len(doc.Types)),
	})

	return artifacts, nil
}

// groupToFilename converts a group label to its page name
func groupToFilename(group string) string {
	name := util.ToSnakeCase(util.SanitizeIdentifier(group))
	name = strings.ReplaceAll(name, "_", "-")
	if name == "types" || name == "readme" {
		name = "group-" + name
	}
	return name + ".md"
}

// typeAnchor is the heading anchor of a type on types.md
func typeAnchor(name string) string {
	return "types.md#" + strings.ToLower(name)
}

func (g *Generator) generateIndex(doc *contract.Document, groups []string, byGroup map[string][]contract.Endpoint, timestamp string) string {
	var sb strings.Builder

	sb.WriteString(typegen.MarkdownHeader(timestamp))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("# %s Reference\n\n", g.title))

	sb.WriteString("## Endpoints\n\n")
	for _, group := range groups {
		sb.WriteString(fmt.Sprintf("- **[%s](./%s)** (%d endpoints)\n",
			group, groupToFilename(group), len(byGroup[group])))
	}
	sb.WriteString(fmt.Sprintf("\n**Total: %d endpoints, %d require authentication**\n\n",
		len(doc.Endpoints), doc.AuthEndpoints()))

	sb.WriteString("## Types\n\n")
	sb.WriteString(fmt.Sprintf("- [Type definitions](./types.md) (%d types)\n", len(doc.Types)))

	return sb.String()
}

// generateGroupFile creates the page for a single endpoint group
func generateGroupFile(doc *contract.Document, group string, endpoints []contract.Endpoint, timestamp string) string {
	var sb strings.Builder

	sb.WriteString(typegen.MarkdownHeader(timestamp))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("# %s\n\n", group))

	// Quick reference table
	sb.WriteString("| Method | Endpoint | Handler | Auth |\n")
	sb.WriteString("|--------|----------|---------|------|\n")
	for _, e := range endpoints {
		auth := ""
		if e.RequiresAuth {
			auth = "yes"
		}
		sb.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s |\n", e.Method, e.Path, e.Name, auth))
	}
	sb.WriteString("\n---\n\n")

	for _, e := range endpoints {
		writeEndpoint(&sb, doc, e)
	}

	sb.WriteString("[← Back to API Index](./README.md)\n")
	return sb.String()
}

// writeEndpoint formats a single endpoint with its body fields inlined
func writeEndpoint(sb *strings.Builder, doc *contract.Document, e contract.Endpoint) {
	sb.WriteString(fmt.Sprintf("### `%s` %s\n\n", e.Method, e.Path))
	sb.WriteString(e.Description + "\n\n")
	sb.WriteString(fmt.Sprintf("**Handler**: `%s`\n\n", e.Name))

	if e.RequiresAuth {
		sb.WriteString("**Authentication**: bearer token required\n\n")
	}

	if e.RequestType != "" {
		sb.WriteString(fmt.Sprintf("**Request**: %s\n\n", typeLink(e.RequestType)))
		writeBodyFields(sb, doc, e.RequestType)
	}
	if e.ResponseType != "" {
		sb.WriteString(fmt.Sprintf("**Response**: %s\n\n", typeLink(e.ResponseType)))
		writeBodyFields(sb, doc, e.ResponseType)
	}

	sb.WriteString("---\n\n")
}

func typeLink(expr string) string {
	base := contract.ParseTypeExpr(expr).BaseName()
	if util.IsPrimitive(base) {
		return fmt.Sprintf("`%s`", expr)
	}
	return fmt.Sprintf("[`%s`](./%s)", expr, typeAnchor(base))
}

func writeBodyFields(sb *strings.Builder, doc *contract.Document, expr string) {
	t, ok := doc.LookupType(contract.ParseTypeExpr(expr).BaseName())
	if !ok || len(t.Fields) == 0 {
		return
	}
	writeFieldTable(sb, t)
	sb.WriteString("\n")
}

func writeFieldTable(sb *strings.Builder, t contract.Type) {
	sb.WriteString("| Field | Type | Required | Description |\n")
	sb.WriteString("|-------|------|----------|-------------|\n")
	for _, f := range t.Fields {
		required := "yes"
		if f.Optional {
			required = "no"
		}
		sb.WriteString(fmt.Sprintf("| `%s` | `%s` | %s | %s |\n",
			f.JSONName, escapeCell(typescript.MapType(f.SourceType)), required, escapeCell(f.Description)))
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func generateTypesFile(doc *contract.Document, timestamp string) string {
	var sb strings.Builder

	sb.WriteString(typegen.MarkdownHeader(timestamp))
	sb.WriteString("\n")
	sb.WriteString("# Types\n\n")

	for _, t := range doc.Types {
		sb.WriteString(fmt.Sprintf("## %s\n\n", t.Name))
		if t.Description != "" {
			sb.WriteString(t.Description + "\n\n")
		}
		if len(t.Fields) == 0 {
			sb.WriteString("_No fields._\n\n")
			continue
		}
		writeFieldTable(&sb, t)
		sb.WriteString("\n")
	}

	sb.WriteString("[← Back to API Index](./README.md)\n")
	return sb.String()
}
