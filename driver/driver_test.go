package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/errors"
)

const orgContract = "type Org {\n" +
	"\tname string `json:\"name\"`\n" +
	"\townerId *int `json:\"owner_id\"`\n" +
	"}\n" +
	"\n" +
	"type CreateOrgReq {\n" +
	"\tname string `json:\"name\"`\n" +
	"}\n" +
	"\n" +
	"@server(\n" +
	"\tjwt: Auth\n" +
	"\tgroup: org\n" +
	")\n" +
	"service admin-api {\n" +
	"\t@handler CreateOrg\n" +
	"\tpost /orgs (CreateOrgReq) returns (Org)\n" +
	"\n" +
	"\t@handler GetOrg\n" +
	"\tget /orgs/:id returns (Org)\n" +
	"}\n"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func setupProject(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "api"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "main.api"), []byte(orgContract), 0644))

	cfg := config.Default()
	cfg.BaseDir = dir
	return cfg
}

func TestGenerate_AllTargets(t *testing.T) {
	cfg := setupProject(t)
	var stdout bytes.Buffer
	d := New(cfg, WithStdout(&stdout), WithClock(fixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))))

	summary, err := d.Generate(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Types)
	assert.Equal(t, 2, summary.Endpoints)
	assert.Equal(t, 2, summary.AuthEndpoints)

	for _, rel := range []string{
		"frontend/src/types/generated/types.ts",
		"frontend/src/lib/api/generated/index.ts",
		"frontend/src/lib/api/generated/hooks.ts",
		"mobile/lib/models.dart",
		"mobile/lib/api_client.dart",
		"mobile/pubspec.yaml",
		"docs/openapi/swagger.json",
		"docs/api/README.md",
		"docs/api/org.md",
		"docs/api/types.md",
	} {
		assert.FileExists(t, filepath.Join(cfg.BaseDir, rel))
	}
	assert.Len(t, summary.Files, 10)
	assert.Contains(t, stdout.String(), "✓ Generated ")

	types, err := os.ReadFile(filepath.Join(cfg.BaseDir, "frontend/src/types/generated/types.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(types), "// Generated at: 2026-01-02T03:04:05Z")
	assert.Contains(t, string(types), "owner_id?: number;")
}

func TestGenerate_SingleTarget(t *testing.T) {
	cfg := setupProject(t)

	summary, err := New(cfg).Generate(context.Background(), TargetOpenAPI)
	require.NoError(t, err)
	require.Len(t, summary.Files, 1)
	assert.Equal(t, "openapi", summary.Files[0].Target)
	assert.NoFileExists(t, filepath.Join(cfg.BaseDir, "mobile/lib/models.dart"))
}

func TestCheck_IgnoresTimestamps(t *testing.T) {
	cfg := setupProject(t)

	_, err := New(cfg, WithClock(fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))).Generate(context.Background())
	require.NoError(t, err)

	later := New(cfg, WithClock(fixedClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))))
	result, err := later.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Equal(t, 10, result.Checked)
}

func TestCheck_DetectsDrift(t *testing.T) {
	cfg := setupProject(t)
	d := New(cfg)

	_, err := d.Generate(context.Background())
	require.NoError(t, err)

	hooks := filepath.Join(cfg.BaseDir, "frontend/src/lib/api/generated/hooks.ts")
	require.NoError(t, os.WriteFile(hooks, []byte("// edited by hand\n"), 0644))
	require.NoError(t, os.Remove(filepath.Join(cfg.BaseDir, "docs/api/types.md")))

	result, err := d.Check(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsOutOfDate(err))
	assert.False(t, result.UpToDate)
	require.Len(t, result.Differences, 2)
	assert.Equal(t, "content differs", result.Differences[0].Reason)
	assert.Equal(t, "missing", result.Differences[1].Reason)
}

func TestLoad_SkipsMissingFiles(t *testing.T) {
	cfg := setupProject(t)
	cfg.Contracts.Files = []string{"api/missing.api", "api/main.api"}

	doc, err := New(cfg).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, doc.Types, 2)
}

func TestLoad_NoContracts(t *testing.T) {
	cfg := config.Default()
	cfg.BaseDir = t.TempDir()

	_, err := New(cfg).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNoContracts))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoad_MergesFilesInOrder(t *testing.T) {
	cfg := setupProject(t)
	extra := "type Zone {\n\tcode string `json:\"code\"`\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.BaseDir, "api", "zone.api"), []byte(extra), 0644))
	cfg.Contracts.Files = []string{"api/main.api", "api/zone.api"}
	cfg.Parser.Strict = true

	doc, err := New(cfg).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Types, 3)
	assert.Equal(t, "Zone", doc.Types[2].Name)
}

func TestGenerate_WriteFailureIsFatal(t *testing.T) {
	cfg := setupProject(t)
	blocker := filepath.Join(cfg.BaseDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))
	cfg.TypeScript.TypesDir = "blocker/types"

	_, err := New(cfg).Generate(context.Background(), TargetTypeScript)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}

func TestGenerate_Cancelled(t *testing.T) {
	cfg := setupProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg).Generate(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseTargets(t *testing.T) {
	tests := []struct {
		names []string
		want  []Target
	}{
		{nil, AllTargets},
		{[]string{"all"}, AllTargets},
		{[]string{"ts"}, []Target{TargetTypeScript}},
		{[]string{"md", "swagger", "typescript"}, []Target{TargetTypeScript, TargetOpenAPI, TargetMarkdown}},
		{[]string{"dart", "Dart"}, []Target{TargetDart}},
	}

	for _, tt := range tests {
		got, err := ParseTargets(tt.names)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v", tt.names)
	}

	_, err := ParseTargets([]string{"cobol"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownTarget))
}
