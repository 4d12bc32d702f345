package typegen

import (
	"os"
	"path/filepath"

	"github.com/teranos/contractgen/errors"
)

// WriteArtifact writes one artifact, creating its directory. Each file is
// fully overwritten; concurrent runs against the same output are last-writer-wins.
func WriteArtifact(a Artifact) error {
	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WithHintf(errors.Wrapf(err, "failed to create output directory %s", dir),
			"check that %s is writable", filepath.Dir(dir))
	}
	if err := os.WriteFile(a.Path, a.Content, 0644); err != nil {
		return errors.WithHint(errors.Wrapf(err, "failed to write %s", a.Path),
			"check that the output directory is writable")
	}
	return nil
}
