package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/errors"
)

const pingContract = "type Pong {\n" +
	"\tok bool `json:\"ok\"`\n" +
	"}\n" +
	"service s {\n" +
	"\t@handler Ping\n" +
	"\tget /ping returns (Pong)\n" +
	"}\n"

func init() {
	pterm.DisableColor()
}

// execute runs the root command with fresh flag state.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, verbosity, jsonOutput, initForce = "", 0, false, false

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)

	_, err := execute(t, "init", "--config", cfgPath)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "api"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "main.api"), []byte(pingContract), 0644))
	return cfgPath
}

func TestInit_RefusesOverwrite(t *testing.T) {
	cfgPath := setupProject(t)

	_, err := execute(t, "init", "--config", cfgPath)
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = execute(t, "init", "--config", cfgPath, "--force")
	require.NoError(t, err)
	assert.FileExists(t, cfgPath+".back1")
}

func TestGenerateThenCheck(t *testing.T) {
	cfgPath := setupProject(t)
	dir := filepath.Dir(cfgPath)

	out, err := execute(t, "ts", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 3 files")
	assert.FileExists(t, filepath.Join(dir, "frontend/src/types/generated/types.ts"))

	_, err = execute(t, "check", "ts", "--config", cfgPath)
	require.NoError(t, err)

	_, err = execute(t, "check", "--config", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.IsOutOfDate(err))
}

func TestGenerate_JSONSummary(t *testing.T) {
	cfgPath := setupProject(t)

	out, err := execute(t, "openapi", "--config", cfgPath, "--json")
	require.NoError(t, err)

	var summary struct {
		Types     int `json:"types"`
		Endpoints int `json:"endpoints"`
		Files     []struct {
			Target string `json:"target"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 1, summary.Types)
	assert.Equal(t, 1, summary.Endpoints)
	require.Len(t, summary.Files, 1)
	assert.Equal(t, "openapi", summary.Files[0].Target)
}

func TestParse(t *testing.T) {
	cfgPath := setupProject(t)

	out, err := execute(t, "parse", "--config", cfgPath)
	require.NoError(t, err)

	var parsed struct {
		Types []struct {
			Name string `json:"name"`
		} `json:"types"`
		Endpoints []struct {
			Name  string `json:"name"`
			Group string `json:"group"`
		} `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed.Types, 1)
	assert.Equal(t, "Pong", parsed.Types[0].Name)
	require.Len(t, parsed.Endpoints, 1)
	assert.Equal(t, "default", parsed.Endpoints[0].Group)
}

func TestCheck_UnknownTarget(t *testing.T) {
	_, err := execute(t, "check", "cobol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownTarget))
}

func TestInvalidConfigRejected(t *testing.T) {
	cfgPath := setupProject(t)
	require.NoError(t, os.WriteFile(cfgPath, []byte("[dart]\nclient_class = \"not valid\"\n"), 0644))

	_, err := execute(t, "dart", "--config", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "contractgen")
}
