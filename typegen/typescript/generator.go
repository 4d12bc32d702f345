// Package typescript renders a contract as TypeScript interfaces, a grouped
// API client and React Query hooks.
package typescript

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

// typeConfig maps contract types to TypeScript. Timestamps stay strings on
// the wire; callers parse them if they need Date values.
var typeConfig = &util.TypeConverterConfig{
	TypeMapping: map[util.Primitive]string{
		util.PrimString:    "string",
		util.PrimInt32:     "number",
		util.PrimInt64:     "number",
		util.PrimFloat32:   "number",
		util.PrimFloat64:   "number",
		util.PrimBool:      "boolean",
		util.PrimObject:    "any",
		util.PrimTimestamp: "string",
	},
	ArrayFormat: func(elem string) string {
		if strings.Contains(elem, " | ") {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	},
	NullableFormat: func(inner string) string {
		if inner == "any" {
			return inner
		}
		return inner + " | null"
	},
	MapFormat: func(keyType, valType string) string {
		return fmt.Sprintf("Record<%s, %s>", keyType, valType)
	},
}

// MapType converts a contract type expression to TypeScript.
func MapType(expr string) string {
	return util.ConvertGoType(expr, typeConfig)
}

// Generator emits types.ts, index.ts and hooks.ts.
type Generator struct {
	cfg       config.TypeScriptConfig
	typesDir  string
	clientDir string
}

// NewGenerator creates a TypeScript generator writing to the configured dirs.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:       cfg.TypeScript,
		typesDir:  cfg.Resolve(cfg.TypeScript.TypesDir),
		clientDir: cfg.Resolve(cfg.TypeScript.ClientDir),
	}
}

// Language returns the target name.
func (g *Generator) Language() string {
	return "typescript"
}

// Generate renders the three TypeScript files.
func (g *Generator) Generate(doc *contract.Document, opts typegen.Options) ([]typegen.Artifact, error) {
	return []typegen.Artifact{
		{
			Path:    filepath.Join(g.typesDir, "types.ts"),
			Content: []byte(GenerateTypes(doc, opts.Timestamp)),
			Target:  g.Language(),
			Summary: fmt.Sprintf("%d types", len(doc.Types)),
		},
		{
			Path:    filepath.Join(g.clientDir, "index.ts"),
			Content: []byte(GenerateClient(doc, g.cfg, opts.Timestamp)),
			Target:  g.Language(),
			Summary: fmt.Sprintf("%d endpoints", len(doc.Endpoints)),
		},
		{
			Path:    filepath.Join(g.clientDir, "hooks.ts"),
			Content: []byte(GenerateHooks(doc, g.cfg, opts.Timestamp)),
			Target:  g.Language(),
			Summary: fmt.Sprintf("%d hooks", len(doc.Endpoints)),
		},
	}, nil
}

// groupObjectName is the exported client object for a group. Ungrouped
// endpoints live on `api`.
func groupObjectName(group string) string {
	if group == contract.DefaultGroup || group == "" {
		return "api"
	}
	return util.SanitizeIdentifier(group)
}

// memberName is the client function name for an endpoint.
func memberName(e contract.Endpoint) string {
	return util.LowerFirst(e.Name)
}

func propertyName(name string) string {
	if util.IsIdentifier(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "\\'") + "'"
}

func docText(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}

func writeImportList(sb *strings.Builder, keyword string, names []string, from string) {
	if len(names) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("import %s{\n", keyword))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  %s,\n", name))
	}
	sb.WriteString(fmt.Sprintf("} from '%s';\n", from))
}
