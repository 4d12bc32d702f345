package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeExpr(t *testing.T) {
	e := ParseTypeExpr(" []*map[string]Org ")
	require.Equal(t, KindArray, e.Kind)
	require.Equal(t, KindOptional, e.Elem.Kind)
	require.Equal(t, KindMap, e.Elem.Elem.Kind)
	assert.Equal(t, "Org", e.BaseName())
	assert.Equal(t, "[]*map[string]Org", e.String())

	assert.Equal(t, KindNamed, ParseTypeExpr("map[string").Kind, "unterminated map falls back to named")
}

func TestTypeExprBaseName(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"Org", "Org"},
		{"Org?", "Org"},
		{"?Org", "Org"},
		{"*Org", "Org"},
		{"[3]Org", "Org"},
		{"[]Org?", "Org"},
		{"*[]Org", "Org"},
		{"map[string][]Member", "Member"},
		{"time.Time", "time.Time"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTypeExpr(tt.expr).BaseName())
		})
	}
}
