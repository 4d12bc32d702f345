package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/contractgen/driver"
	"github.com/teranos/contractgen/typegen"
)

// PrintSummary renders a generation summary as a table of written files.
func PrintSummary(w io.Writer, base string, s *driver.Summary) error {
	pterm.Success.WithWriter(w).Printfln("Generated %d files from %d types and %d endpoints (%d require auth)",
		len(s.Files), s.Types, s.Endpoints, s.AuthEndpoints)

	data := pterm.TableData{{"Target", "File", "Contents", "Bytes"}}
	for _, f := range s.Files {
		data = append(data, []string{f.Target, relativeTo(base, f.Path), f.Summary, fmt.Sprintf("%d", f.Bytes)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}

// PrintCheckResult reports drift found by `contractgen check`.
func PrintCheckResult(w io.Writer, base string, r *typegen.CheckResult) error {
	if r.UpToDate {
		pterm.Success.WithWriter(w).Printfln("All %d generated files are up to date", r.Checked)
		return nil
	}

	pterm.Error.WithWriter(w).Printfln("%d of %d generated files are out of date", len(r.Differences), r.Checked)
	data := pterm.TableData{{"Target", "File", "Reason"}}
	for _, d := range r.Differences {
		data = append(data, []string{d.Target, relativeTo(base, d.Path), d.Reason})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}

// relativeTo shortens path for display when it lies under base.
func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
