// Package dart renders a contract as Dart value classes, an HTTP client
// class and the pubspec.yaml of the package holding them.
package dart

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

var typeConfig = &util.TypeConverterConfig{
	TypeMapping: map[util.Primitive]string{
		util.PrimString:    "String",
		util.PrimInt32:     "int",
		util.PrimInt64:     "int",
		util.PrimFloat32:   "double",
		util.PrimFloat64:   "double",
		util.PrimBool:      "bool",
		util.PrimObject:    "dynamic",
		util.PrimTimestamp: "DateTime",
	},
	ArrayFormat: func(elem string) string {
		return fmt.Sprintf("List<%s>", elem)
	},
	NullableFormat: func(inner string) string {
		if inner == "dynamic" || strings.HasSuffix(inner, "?") {
			return inner
		}
		return inner + "?"
	},
	MapFormat: func(keyType, valType string) string {
		return fmt.Sprintf("Map<%s, %s>", keyType, valType)
	},
}

// MapType converts a contract type expression to Dart.
func MapType(expr string) string {
	return util.ConvertGoType(expr, typeConfig)
}

// Generator emits models.dart, api_client.dart and pubspec.yaml.
type Generator struct {
	cfg         config.DartConfig
	outputDir   string
	pubspecPath string
}

// NewGenerator creates a Dart generator for the configured package.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:         cfg.Dart,
		outputDir:   cfg.Resolve(cfg.Dart.OutputDir),
		pubspecPath: cfg.PubspecFile(),
	}
}

// Language returns the target name.
func (g *Generator) Language() string {
	return "dart"
}

// Generate renders the models, the client and the package manifest.
func (g *Generator) Generate(doc *contract.Document, opts typegen.Options) ([]typegen.Artifact, error) {
	pubspec, err := GeneratePubspec(g.cfg, opts.Timestamp)
	if err != nil {
		return nil, err
	}

	return []typegen.Artifact{
		{
			Path:    filepath.Join(g.outputDir, "models.dart"),
			Content: []byte(GenerateModels(doc, opts.Timestamp)),
			Target:  g.Language(),
			Summary: fmt.Sprintf("%d classes", len(doc.Types)),
		},
		{
			Path:    filepath.Join(g.outputDir, "api_client.dart"),
			Content: []byte(GenerateClient(doc, g.cfg, opts.Timestamp)),
			Target:  g.Language(),
			Summary: fmt.Sprintf("%d methods", len(doc.Endpoints)),
		},
		{
			Path:    g.pubspecPath,
			Content: pubspec,
			Target:  g.Language(),
			Summary: "package " + g.cfg.PackageName,
		},
	}, nil
}

// Dart reserved words that cannot be used as identifiers
var dartKeywords = map[string]bool{
	"abstract": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "covariant": true, "default": true, "deferred": true, "do": true,
	"dynamic": true, "else": true, "enum": true, "export": true, "extends": true,
	"extension": true, "external": true, "factory": true, "false": true, "final": true,
	"finally": true, "for": true, "get": true, "if": true, "implements": true,
	"import": true, "in": true, "interface": true, "is": true, "late": true,
	"library": true, "mixin": true, "new": true, "null": true, "operator": true,
	"part": true, "required": true, "rethrow": true, "return": true, "set": true,
	"static": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typedef": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true,
}

// toDartIdent derives a lower-camel identifier from a JSON key.
// Adds a trailing underscore for reserved words.
func toDartIdent(s string) string {
	ident := util.SanitizeIdentifier(util.ToCamelCase(s))
	if strings.HasPrefix(ident, "_") {
		// A leading underscore would make the member library-private
		ident = "f" + ident
	}
	if dartKeywords[ident] {
		return ident + "_"
	}
	return ident
}

// dartString quotes s as a single-quoted Dart literal.
func dartString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, "$", `\$`)
	return "'" + s + "'"
}

// decodeExpr returns Dart code converting the decoded JSON value v to the
// type described by e.
func decodeExpr(e *contract.Expr, v string) string {
	switch e.Kind {
	case contract.KindOptional:
		return fmt.Sprintf("%s == null ? null : %s", v, decodeExpr(e.Elem, v))
	case contract.KindArray:
		return fmt.Sprintf("(%s as List).map((e) => %s).toList()", v, decodeExpr(e.Elem, "e"))
	case contract.KindMap:
		return fmt.Sprintf("(%s as Map<String, dynamic>).map((k, v) => MapEntry(k, %s))", v, decodeExpr(e.Elem, "v"))
	}

	p, ok := util.LookupPrimitive(e.Name)
	switch {
	case !ok:
		return fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>)", e.Name, v)
	case p == util.PrimTimestamp:
		return fmt.Sprintf("DateTime.parse(%s as String)", v)
	case p == util.PrimObject:
		return v
	case p == util.PrimFloat32 || p == util.PrimFloat64:
		return fmt.Sprintf("(%s as num).toDouble()", v)
	default:
		return fmt.Sprintf("%s as %s", v, typeConfig.TypeMapping[p])
	}
}
