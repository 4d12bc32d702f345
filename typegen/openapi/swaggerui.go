package openapi

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/teranos/contractgen/errors"
	"github.com/teranos/contractgen/typegen"
)

// SwaggerUIIndex is the page inside the Swagger UI directory that names the
// document to load.
const SwaggerUIIndex = "index.html"

var swaggerURLPattern = regexp.MustCompile(`url:\s*["'][^"']*["']`)

// SwaggerUI points the first url: setting of an existing Swagger UI page at
// docPath, relative to uiDir. ok is false when the page does not exist; the
// page itself is never created.
func SwaggerUI(uiDir, docPath string) (a typegen.Artifact, ok bool, err error) {
	index := filepath.Join(uiDir, SwaggerUIIndex)
	content, err := os.ReadFile(index)
	if os.IsNotExist(err) {
		return typegen.Artifact{}, false, nil
	}
	if err != nil {
		return typegen.Artifact{}, false, errors.Wrapf(err, "failed to read %s", index)
	}

	rel, err := filepath.Rel(uiDir, docPath)
	if err != nil {
		return typegen.Artifact{}, false, errors.Wrapf(err, "failed to locate %s from %s", docPath, uiDir)
	}
	replacement := []byte("url: '" + filepath.ToSlash(rel) + "'")

	replaced := false
	content = swaggerURLPattern.ReplaceAllFunc(content, func(m []byte) []byte {
		if replaced {
			return m
		}
		replaced = true
		return replacement
	})

	return typegen.Artifact{
		Path:    index,
		Content: content,
		Target:  "openapi",
		Summary: "swagger ui",
	}, true, nil
}
