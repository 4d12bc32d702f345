package contract

import (
	"regexp"
	"strings"
)

// Kind is the outermost decoration of a type expression.
type Kind int

const (
	KindNamed    Kind = iota // string, Org, time.Time
	KindArray                // []X
	KindOptional             // *X, ?X, X?
	KindMap                  // map[K]V
)

// Expr is a parsed contract type expression. Elem is set for arrays,
// optionals and maps (the value type); Key only for maps.
type Expr struct {
	Kind Kind
	Name string
	Elem *Expr
	Key  *Expr
}

var fixedArrayPrefix = regexp.MustCompile(`^\[\d*\]`)

// ParseTypeExpr parses a contract type expression into its decoration tree.
// A trailing ? is the outermost decoration; prefixes nest left to right, so
// []*X is a sequence of optional X and *[]X is an optional sequence of X.
// Input that is not decorated becomes a named type, so parsing never fails.
func ParseTypeExpr(expr string) *Expr {
	expr = strings.TrimSpace(expr)

	switch {
	case len(expr) > 1 && strings.HasSuffix(expr, "?"):
		return &Expr{Kind: KindOptional, Elem: ParseTypeExpr(expr[:len(expr)-1])}

	case strings.HasPrefix(expr, "*"), strings.HasPrefix(expr, "?"):
		return &Expr{Kind: KindOptional, Elem: ParseTypeExpr(expr[1:])}

	case strings.HasPrefix(expr, "map["):
		if end := matchingBracket(expr, len("map")); end > 0 {
			return &Expr{
				Kind: KindMap,
				Key:  ParseTypeExpr(expr[len("map["):end]),
				Elem: ParseTypeExpr(expr[end+1:]),
			}
		}

	case fixedArrayPrefix.MatchString(expr):
		prefix := fixedArrayPrefix.FindString(expr)
		return &Expr{Kind: KindArray, Elem: ParseTypeExpr(expr[len(prefix):])}
	}

	return &Expr{Kind: KindNamed, Name: expr}
}

// matchingBracket returns the index of the ] closing the [ at open.
func matchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// String renders the expression back in contract syntax.
func (e *Expr) String() string {
	switch e.Kind {
	case KindArray:
		return "[]" + e.Elem.String()
	case KindOptional:
		return "*" + e.Elem.String()
	case KindMap:
		return "map[" + e.Key.String() + "]" + e.Elem.String()
	default:
		return e.Name
	}
}

// StripOptional returns the expression under an outermost optional marker.
// Fields render that marker themselves, so their types drop it.
func (e *Expr) StripOptional() *Expr {
	if e.Kind == KindOptional {
		return e.Elem
	}
	return e
}

// BaseName returns the innermost named type.
func (e *Expr) BaseName() string {
	for e.Kind != KindNamed {
		e = e.Elem
	}
	return e.Name
}
