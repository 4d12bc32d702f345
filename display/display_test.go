package display

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/contractgen/driver"
	"github.com/teranos/contractgen/typegen"
)

func init() {
	pterm.DisableColor()
}

func TestShouldOutputJSON(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().Bool("json", false, "")
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(child)

	assert.False(t, ShouldOutputJSON(nil))
	assert.False(t, ShouldOutputJSON(child))

	require.NoError(t, root.PersistentFlags().Set("json", "true"))
	assert.True(t, ShouldOutputJSON(child))
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"types": 2}))
	assert.Equal(t, "{\n  \"types\": 2\n}\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	s := &driver.Summary{
		Types: 2, Endpoints: 3, AuthEndpoints: 1,
		Files: []driver.FileResult{
			{Path: "/p/docs/openapi/swagger.json", Target: "openapi", Bytes: 512, Summary: "2 paths, 2 schemas"},
		},
	}
	require.NoError(t, PrintSummary(&buf, "/p", s))

	out := buf.String()
	assert.Contains(t, out, "Generated 1 files from 2 types and 3 endpoints (1 require auth)")
	assert.Contains(t, out, "docs/openapi/swagger.json")
	assert.NotContains(t, out, "/p/docs")
	assert.Contains(t, out, "512")
}

func TestPrintCheckResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintCheckResult(&buf, "", &typegen.CheckResult{UpToDate: true, Checked: 4}))
	assert.Contains(t, buf.String(), "All 4 generated files are up to date")

	buf.Reset()
	r := &typegen.CheckResult{Checked: 4, Differences: []typegen.Difference{
		{Path: "mobile/lib/models.dart", Target: "dart", Reason: "content differs"},
	}}
	require.NoError(t, PrintCheckResult(&buf, "", r))
	assert.Contains(t, buf.String(), "1 of 4 generated files are out of date")
	assert.Contains(t, buf.String(), "content differs")
}

func TestSummaryJSONShape(t *testing.T) {
	data, err := MarshalJSON(&driver.Summary{RunID: "r", Files: []driver.FileResult{}})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"run_id", "types", "endpoints", "auth_endpoints", "files"} {
		assert.Contains(t, decoded, key)
	}
}
