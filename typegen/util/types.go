package util

import "github.com/teranos/contractgen/contract"

// Primitive is a contract built-in type, independent of target language.
type Primitive int

const (
	NotPrimitive Primitive = iota
	PrimString
	PrimInt32
	PrimInt64
	PrimFloat32
	PrimFloat64
	PrimBool
	PrimObject
	PrimTimestamp
)

// primitives is the shared table of contract built-ins. Every target maps
// these kinds; anything else is a custom type name.
var primitives = map[string]Primitive{
	"string":      PrimString,
	"int":         PrimInt32,
	"int8":        PrimInt32,
	"int16":       PrimInt32,
	"int32":       PrimInt32,
	"uint":        PrimInt32,
	"uint8":       PrimInt32,
	"uint16":      PrimInt32,
	"uint32":      PrimInt32,
	"byte":        PrimInt32,
	"rune":        PrimInt32,
	"int64":       PrimInt64,
	"uint64":      PrimInt64,
	"float32":     PrimFloat32,
	"float64":     PrimFloat64,
	"bool":        PrimBool,
	"interface{}": PrimObject,
	"any":         PrimObject,
	"time.Time":   PrimTimestamp,
}

// LookupPrimitive returns the primitive kind of a bare type name.
func LookupPrimitive(name string) (Primitive, bool) {
	p, ok := primitives[name]
	return p, ok
}

// IsPrimitive reports whether name is a contract built-in.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

// TypeConverterConfig configures how contract types are converted to target
// language types.
type TypeConverterConfig struct {
	// TypeMapping maps primitive kinds to target language types
	TypeMapping map[Primitive]string

	// ArrayFormat formats a sequence type given the element type
	// e.g., TypeScript: "%s[]", Dart: "List<%s>"
	ArrayFormat func(elemType string) string

	// NullableFormat formats the nullable form of a type
	// e.g., TypeScript: "%s | null", Dart: "%s?"
	NullableFormat func(inner string) string

	// MapFormat formats a map type given key and value types
	// e.g., TypeScript: "Record<%s, %s>", Dart: "Map<%s, %s>"
	MapFormat func(keyType, valType string) string
}

// ConvertGoType converts a contract type expression to a target language type.
// Decorations apply in a fixed order: sequence, then optional, then primitive
// lookup, with custom names passed through verbatim.
func ConvertGoType(expr string, config *TypeConverterConfig) string {
	return ConvertExpr(contract.ParseTypeExpr(expr), config)
}

// ConvertFieldType converts a field's type expression, leaving out the
// outermost optional marker that the field declaration renders itself.
func ConvertFieldType(expr string, config *TypeConverterConfig) string {
	return ConvertExpr(contract.ParseTypeExpr(expr).StripOptional(), config)
}

// ConvertExpr converts a parsed type expression.
func ConvertExpr(e *contract.Expr, config *TypeConverterConfig) string {
	switch e.Kind {
	case contract.KindArray:
		return config.ArrayFormat(ConvertExpr(e.Elem, config))

	case contract.KindOptional:
		return config.NullableFormat(ConvertExpr(e.Elem, config))

	case contract.KindMap:
		return config.MapFormat(ConvertExpr(e.Key, config), ConvertExpr(e.Elem, config))

	default:
		if p, ok := primitives[e.Name]; ok {
			if mapped, ok := config.TypeMapping[p]; ok {
				return mapped
			}
		}
		// Assume it's a reference to a type declared in the contract
		return e.Name
	}
}

// ReferencedTypes returns the custom type names used by the given
// expressions, in first-seen order. Primitives are skipped.
func ReferencedTypes(exprs []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, expr := range exprs {
		if expr == "" {
			continue
		}
		name := contract.ParseTypeExpr(expr).BaseName()
		if IsPrimitive(name) || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
