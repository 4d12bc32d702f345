package typegen

import (
	"os"

	"github.com/zeebo/xxh3"
)

// CheckResult holds the result of comparing rendered artifacts with disk.
type CheckResult struct {
	UpToDate    bool         `json:"up_to_date"`
	Checked     int          `json:"checked"`
	Differences []Difference `json:"differences,omitempty"`
}

// Difference describes one file that is missing or stale.
type Difference struct {
	Path   string `json:"path"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// CompareArtifacts compares freshly rendered artifacts with the files on
// disk, ignoring generation timestamps.
func CompareArtifacts(artifacts []Artifact) *CheckResult {
	result := &CheckResult{Checked: len(artifacts)}

	for _, a := range artifacts {
		existing, err := os.ReadFile(a.Path)
		switch {
		case os.IsNotExist(err):
			result.Differences = append(result.Differences, Difference{Path: a.Path, Target: a.Target, Reason: "missing"})
		case err != nil:
			result.Differences = append(result.Differences, Difference{Path: a.Path, Target: a.Target, Reason: "error: " + err.Error()})
		case ContentHash(existing) != ContentHash(a.Content):
			result.Differences = append(result.Differences, Difference{Path: a.Path, Target: a.Target, Reason: "content differs"})
		}
	}

	result.UpToDate = len(result.Differences) == 0
	return result
}

// ContentHash hashes generated content with metadata lines removed.
func ContentHash(content []byte) uint64 {
	return xxh3.Hash(filterMetadataLines(content))
}
