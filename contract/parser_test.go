package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgContract = `syntax = "v1"

// Org is an organization
type Org {
	name string ` + "`json:\"name\"`" + ` // display name
	ownerId *int ` + "`json:\"owner_id\"`" + `
}

type CreateOrgReq {
	name string ` + "`json:\"name\"`" + `
}

@server(
	jwt: Auth
	group: org
	prefix: /api/v1
)
service admin-api {
	@handler CreateOrg
	post /orgs (CreateOrgReq) returns (Org)

	@handler GetOrg
	get /orgs/:id returns (Org)
}

service admin-api {
	@handler Ping
	get /ping
}
`

func TestParseOrgContract(t *testing.T) {
	doc, err := ParseString("org.api", orgContract)
	require.NoError(t, err)
	assert.Empty(t, doc.Diagnostics)

	require.Len(t, doc.Types, 2)
	org := doc.Types[0]
	assert.Equal(t, "Org", org.Name)
	assert.Equal(t, "Org is an organization", org.Description)
	assert.Equal(t, Position{File: "org.api", Line: 4}, org.Source)
	require.Len(t, org.Fields, 2)
	assert.Equal(t, Field{SourceName: "name", SourceType: "string", JSONName: "name", Description: "display name", Source: Position{File: "org.api", Line: 5}}, org.Fields[0])
	assert.Equal(t, Field{SourceName: "ownerId", SourceType: "*int", JSONName: "owner_id", Optional: true, Source: Position{File: "org.api", Line: 6}}, org.Fields[1])
	assert.Empty(t, doc.Types[1].Description)

	require.Len(t, doc.Endpoints, 3)
	create := doc.Endpoints[0]
	assert.Equal(t, "CreateOrg", create.Name)
	assert.Equal(t, "POST", create.Method)
	assert.Equal(t, "/api/v1/orgs", create.Path)
	assert.Equal(t, "org", create.Group)
	assert.Equal(t, "CreateOrgReq", create.RequestType)
	assert.Equal(t, "Org", create.ResponseType)
	assert.True(t, create.RequiresAuth)
	assert.Equal(t, "CreateOrg endpoint", create.Description)
	assert.Equal(t, ShapeRequestResponse, create.Shape())

	get := doc.Endpoints[1]
	assert.Equal(t, "/api/v1/orgs/:id", get.Path)
	assert.Equal(t, ShapeResponseOnly, get.Shape())

	// The closing brace of the first service resets the server context.
	ping := doc.Endpoints[2]
	assert.Equal(t, DefaultGroup, ping.Group)
	assert.Equal(t, "/ping", ping.Path)
	assert.False(t, ping.RequiresAuth)
	assert.Equal(t, ShapeNone, ping.Shape())
}

func TestParseFieldDecorations(t *testing.T) {
	tests := []struct {
		line     string
		wantType string
		wantJSON string
		optional bool
	}{
		{"tags []string `json:\"tags\"`", "[]string", "tags", false},
		{"ids []*int64 `json:\"ids\"`", "[]*int64", "ids", false},
		{"maybe *[]int64 `json:\"maybe\"`", "*[]int64", "maybe", true},
		{"nick ?string `json:\"nick\"`", "?string", "nick", true},
		{"page int `json:\"page,optional\"`", "int", "page", true},
		{"size int `json:\"size,omitempty\" validate:\"max=100\"`", "int", "size", true},
		{"meta map[string]string `json:\"meta\"`", "map[string]string", "meta", false},
		{"at time.Time `form:\"x\" json:\"at\"`", "time.Time", "at", false},
	}

	for _, tt := range tests {
		t.Run(tt.wantJSON, func(t *testing.T) {
			f, ok := parseField(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, f.SourceType)
			assert.Equal(t, tt.wantJSON, f.JSONName)
			assert.Equal(t, tt.optional, f.Optional)
		})
	}
}

func TestParseFieldRejects(t *testing.T) {
	for _, line := range []string{
		"Base",
		"name string",
		"name string `form:\"name\"`",
		"skip string `json:\"-\"`",
	} {
		_, ok := parseField(line)
		assert.False(t, ok, line)
	}
}

func TestParseMalformedLinesProduceDiagnostics(t *testing.T) {
	src := strings.Join([]string{
		"type User {",
		"	id int64 `json:\"id\"`",
		"	this is not a field",
		"}",
		"service user-api {",
		"	@handler GetUser",
		"	fetch the user",
		"	@handler ListUsers",
		"	get /users returns (User)",
		"}",
	}, "\n")

	doc, err := ParseString("user.api", src)
	require.NoError(t, err)

	require.Len(t, doc.Types, 1)
	assert.Len(t, doc.Types[0].Fields, 1)

	require.Len(t, doc.Endpoints, 1)
	assert.Equal(t, "ListUsers", doc.Endpoints[0].Name)

	require.Len(t, doc.Diagnostics, 2)
	assert.Equal(t, 3, doc.Diagnostics[0].Source.Line)
	assert.Equal(t, "this is not a field", doc.Diagnostics[0].Text)
	assert.Equal(t, 7, doc.Diagnostics[1].Source.Line)
	assert.Contains(t, doc.Diagnostics[1].Message, "GetUser")
	assert.Contains(t, doc.Diagnostics[1].String(), "user.api:7:")
}

func TestParseRouteVariants(t *testing.T) {
	tests := []struct {
		route    string
		method   string
		path     string
		request  string
		response string
	}{
		{"post /orgs (CreateOrgReq) returns (Org)", "POST", "/orgs", "CreateOrgReq", "Org"},
		{"put /orgs/:id (UpdateOrgReq)", "PUT", "/orgs/:id", "UpdateOrgReq", ""},
		{"get /orgs returns (OrgList) // list all", "GET", "/orgs", "", "OrgList"},
		{"delete /orgs/:id", "DELETE", "/orgs/:id", "", ""},
		{"post /logout (void) returns (void)", "POST", "/logout", "", ""},
		{"patch /orgs/:id(PatchReq) returns (Org)", "PATCH", "/orgs/:id", "PatchReq", "Org"},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			doc, err := ParseString("r.api", "service s {\n@handler H\n"+tt.route+"\n}\n")
			require.NoError(t, err)
			require.Len(t, doc.Endpoints, 1)
			e := doc.Endpoints[0]
			assert.Equal(t, tt.method, e.Method)
			assert.Equal(t, tt.path, e.Path)
			assert.Equal(t, tt.request, e.RequestType)
			assert.Equal(t, tt.response, e.ResponseType)
		})
	}
}

func TestParseSingleLineServerBlock(t *testing.T) {
	src := "@server(jwt: Auth, group: billing)\nservice s {\n@handler Pay\npost /pay (PayReq)\n}\n"
	doc, err := ParseString("b.api", src)
	require.NoError(t, err)
	require.Len(t, doc.Endpoints, 1)
	assert.Equal(t, "billing", doc.Endpoints[0].Group)
	assert.True(t, doc.Endpoints[0].RequiresAuth)
	assert.Empty(t, doc.Diagnostics)
}

func TestParseTypeGroup(t *testing.T) {
	src := strings.Join([]string{
		"type (",
		"	// Empty has no fields",
		"	Empty {}",
		"",
		"	Page struct {",
		"		total int64 `json:\"total\"`",
		"	}",
		")",
		"type Tail {",
		"}",
	}, "\n")

	doc, err := ParseString("g.api", src)
	require.NoError(t, err)
	assert.Empty(t, doc.Diagnostics)
	require.Len(t, doc.Types, 3)
	assert.Equal(t, "Empty", doc.Types[0].Name)
	assert.Equal(t, "Empty has no fields", doc.Types[0].Description)
	assert.Empty(t, doc.Types[0].Fields)
	assert.Equal(t, "Page", doc.Types[1].Name)
	assert.Len(t, doc.Types[1].Fields, 1)
	assert.Equal(t, "Tail", doc.Types[2].Name)
}

func TestParseDescriptionSkipsBlankLines(t *testing.T) {
	doc, err := ParseString("d.api", "// Account holder\n\ntype Account {\n}\n")
	require.NoError(t, err)
	require.Len(t, doc.Types, 1)
	assert.Equal(t, "Account holder", doc.Types[0].Description)
}

func TestParseUnterminatedBlocks(t *testing.T) {
	doc, err := ParseString("u.api", "type Open {\n\tid int `json:\"id\"`\n")
	require.NoError(t, err)
	assert.Empty(t, doc.Types)
	require.Len(t, doc.Diagnostics, 1)
	assert.Contains(t, doc.Diagnostics[0].Message, "unterminated type Open")
}

func TestParseHandlerWithoutRoute(t *testing.T) {
	doc, err := ParseString("h.api", "service s {\n\n@handler Dangling\n")
	require.NoError(t, err)
	assert.Empty(t, doc.Endpoints)
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, 3, doc.Diagnostics[0].Source.Line)
	assert.Equal(t, "missing route after @handler Dangling", doc.Diagnostics[0].Message)
}

func TestTransitionTableCoversEveryScope(t *testing.T) {
	for s := scopeTop; s <= scopeRoute; s++ {
		assert.NotEmpty(t, transitions[s], s.String())
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "org.api")
	require.NoError(t, os.WriteFile(path, []byte(orgContract), 0644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Types, 2)
	assert.Equal(t, path, doc.Endpoints[0].Source.File)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.api"))
	assert.Error(t, err)
}
