package markdown

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
)

func testDocument() *contract.Document {
	return &contract.Document{
		Types: []contract.Type{
			{
				Name:        "Org",
				Description: "Org is an organization",
				Fields: []contract.Field{
					{SourceType: "string", JSONName: "name", Description: "display name"},
					{SourceType: "*int", JSONName: "owner_id", Optional: true},
				},
			},
			{Name: "CreateOrgReq", Fields: []contract.Field{{SourceType: "string", JSONName: "name"}}},
			{Name: "Empty", Fields: []contract.Field{}},
		},
		Endpoints: []contract.Endpoint{
			{
				Name: "CreateOrg", Method: "POST", Path: "/orgs", Group: "orgAdmin",
				RequestType: "CreateOrgReq", ResponseType: "Org", RequiresAuth: true,
				Description: "CreateOrg endpoint",
			},
			{Name: "Ping", Method: "GET", Path: "/ping", Group: contract.DefaultGroup, Description: "Ping endpoint"},
		},
	}
}

func generate(t *testing.T) map[string]string {
	t.Helper()
	cfg := config.Default()
	cfg.BaseDir = "/project"

	artifacts, err := NewGenerator(cfg).Generate(testDocument(), typegen.Options{Timestamp: "2026-01-02T03:04:05Z"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	pages := make(map[string]string)
	for _, a := range artifacts {
		if filepath.Dir(a.Path) != filepath.Join("/project", "docs/api") {
			t.Errorf("unexpected output dir for %s", a.Path)
		}
		if a.Target != "markdown" {
			t.Errorf("Target = %q, want markdown", a.Target)
		}
		pages[filepath.Base(a.Path)] = string(a.Content)
	}
	return pages
}

func TestGenerate_Pages(t *testing.T) {
	pages := generate(t)

	for _, name := range []string{"README.md", "org-admin.md", "default.md", "types.md"} {
		content, ok := pages[name]
		if !ok {
			t.Fatalf("missing page %s", name)
		}
		if !strings.HasPrefix(content, "<!-- Code generated by contractgen. DO NOT EDIT. -->\n") {
			t.Errorf("%s: missing generated header", name)
		}
	}
	if len(pages) != 4 {
		t.Errorf("got %d pages, want 4", len(pages))
	}
}

func TestGenerate_Index(t *testing.T) {
	index := generate(t)["README.md"]

	for _, want := range []string{
		"# API Reference\n",
		"- **[orgAdmin](./org-admin.md)** (1 endpoints)\n",
		"- **[default](./default.md)** (1 endpoints)\n",
		"**Total: 2 endpoints, 1 require authentication**",
		"- [Type definitions](./types.md) (3 types)\n",
	} {
		if !strings.Contains(index, want) {
			t.Errorf("README.md missing %q", want)
		}
	}
}

func TestGenerate_GroupPage(t *testing.T) {
	page := generate(t)["org-admin.md"]

	for _, want := range []string{
		"# orgAdmin\n",
		"| POST | `/orgs` | CreateOrg | yes |\n",
		"### `POST` /orgs\n",
		"**Authentication**: bearer token required",
		"**Request**: [`CreateOrgReq`](./types.md#createorgreq)",
		"**Response**: [`Org`](./types.md#org)",
		"| `owner_id` | `number \\| null` | no |  |\n",
		"| `name` | `string` | yes | display name |\n",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("org-admin.md missing %q", want)
		}
	}

	if strings.Contains(generate(t)["default.md"], "Authentication") {
		t.Error("unauthenticated endpoint documented as requiring auth")
	}
}

func TestGenerate_TypesPage(t *testing.T) {
	page := generate(t)["types.md"]

	if !strings.Contains(page, "## Org\n\nOrg is an organization\n\n") {
		t.Error("types.md missing Org section with description")
	}
	if !strings.Contains(page, "## Empty\n\n_No fields._\n") {
		t.Error("types.md missing empty type marker")
	}
}

func TestGroupToFilename(t *testing.T) {
	tests := map[string]string{
		"user":       "user.md",
		"orgAdmin":   "org-admin.md",
		"billing v2": "billing-v2.md",
		"types":      "group-types.md",
	}
	for group, want := range tests {
		if got := groupToFilename(group); got != want {
			t.Errorf("groupToFilename(%q) = %q, want %q", group, got, want)
		}
	}
}
