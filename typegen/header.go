package typegen

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/teranos/contractgen/version"
)

// GeneratorName identifies this tool in generated headers.
const GeneratorName = "contractgen"

// TimestampMarker prefixes the generation time in line-comment headers.
const TimestampMarker = "Generated at:"

// TimestampExtension is the OpenAPI info extension holding the generation
// time, since JSON has no comments.
const TimestampExtension = "x-generated-at"

// VersionExtension is the OpenAPI info extension naming the generator build.
const VersionExtension = "x-generator-version"

// headerLines bounds where a banner may sit. types.ts puts a lint directive
// above it.
const headerLines = 4

var (
	commentMetadataLine = regexp.MustCompile(`^(?://|#|<!--) ` + regexp.QuoteMeta(TimestampMarker) + ` `)
	jsonMetadataLine    = regexp.MustCompile(`^\s*"(?:` + regexp.QuoteMeta(TimestampExtension) + `|` + regexp.QuoteMeta(VersionExtension) + `)": "[^"]*",?\s*$`)
)

// GeneratorVersion returns the generator name and build version, such as
// "contractgen v1.2.0".
func GeneratorVersion() string {
	return GeneratorName + " " + version.Get().Version
}

// Header returns the generated-file banner using a line comment prefix
// such as "//" or "#".
func Header(comment, timestamp string) string {
	return fmt.Sprintf("%s Code generated by %s. DO NOT EDIT.\n%s %s %s (%s)\n",
		comment, GeneratorName, comment, TimestampMarker, timestamp, GeneratorVersion())
}

// MarkdownHeader returns the generated-file banner as HTML comments.
func MarkdownHeader(timestamp string) string {
	return fmt.Sprintf("<!-- Code generated by %s. DO NOT EDIT. -->\n<!-- %s %s (%s) -->\n",
		GeneratorName, TimestampMarker, timestamp, GeneratorVersion())
}

// isMetadataLine reports whether line n (zero-based) only carries generation
// metadata. Comment banners count only near the top of a file, so body text
// mentioning the marker still takes part in comparisons.
func isMetadataLine(n int, line string) bool {
	if n < headerLines && commentMetadataLine.MatchString(line) {
		return true
	}
	return jsonMetadataLine.MatchString(line)
}

// filterMetadataLines drops timestamp lines so two runs over the same input
// compare equal.
func filterMetadataLines(content []byte) []byte {
	var out bytes.Buffer
	for n, line := range bytes.SplitAfter(content, []byte("\n")) {
		if isMetadataLine(n, string(line)) {
			continue
		}
		out.Write(line)
	}
	return out.Bytes()
}
