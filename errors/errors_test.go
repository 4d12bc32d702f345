package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "writing %s", "types.ts")

	assert.Contains(t, wrapped.Error(), "writing types.ts")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.False(t, IsOutOfDate(nil))
}

func TestIsOutOfDate(t *testing.T) {
	err := Wrap(ErrOutOfDate, "2 files differ")
	assert.True(t, IsOutOfDate(err))
	assert.False(t, IsOutOfDate(New("other")))
}

func TestInvalidConfigf(t *testing.T) {
	err := InvalidConfigf("contracts.files: %s", "must not be empty")

	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Equal(t, "contracts.files: must not be empty", err.Error())
}

func TestUnknownTarget(t *testing.T) {
	err := UnknownTarget("kotlin")

	require.True(t, Is(err, ErrUnknownTarget))
	assert.Contains(t, err.Error(), `"kotlin"`)

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Contains(t, hints[0], "typescript")
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func ExampleWithHint() {
	err := New("permission denied")
	err = WithHint(err, "check that the output directory is writable")

	fmt.Println(GetAllHints(err)[0])
	// Output: check that the output directory is writable
}
