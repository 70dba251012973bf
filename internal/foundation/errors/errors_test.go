package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Defaults(t *testing.T) {
	err := NewError(CategoryRender, "marshal failed").Build()
	assert.Equal(t, CategoryRender, err.Category())
	assert.Equal(t, SeverityError, err.Severity())
	assert.Nil(t, err.Cause())
	assert.Equal(t, "[render:error] marshal failed", err.Error())
}

func TestWrapError_UnwrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := WrapError(cause, CategoryFileSystem, "write output").WithContext("path", "site.json").Build()

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "[filesystem:error] write output: disk full", err.Error())
	path, ok := err.Context().GetString("path")
	require.True(t, ok)
	assert.Equal(t, "site.json", path)
}

func TestAsClassified_FindsWrapped(t *testing.T) {
	inner := ConfigError("bad mode").Build()
	wrapped := fmt.Errorf("load: %w", inner)

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, HasCategory(wrapped, CategoryConfig))
	assert.Equal(t, SeverityFatal, GetSeverity(wrapped))

	_, ok = AsClassified(stderrors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	assert.Equal(t, SeverityError, GetSeverity(stderrors.New("plain")))
}

func TestClassifiedError_Is(t *testing.T) {
	a := ValidationError("locale mismatch").WithContext("locale", "/zh/").Build()
	b := ValidationError("locale mismatch").Build()
	c := ValidationError("other").Build()
	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestWithContext_DoesNotMutateOriginal(t *testing.T) {
	orig := GitError("open repository").Build()
	extended := orig.WithContext("dir", "/docs")

	_, ok := orig.Context().Get("dir")
	assert.False(t, ok)
	v, ok := extended.Context().Get("dir")
	require.True(t, ok)
	assert.Equal(t, "/docs", v)
	assert.Equal(t, SeverityWarning, extended.Severity())
}

func TestErrorContext_Merge(t *testing.T) {
	var nilCtx ErrorContext
	other := ErrorContext{"a": 1}
	assert.Equal(t, other, nilCtx.Merge(other))

	merged := ErrorContext{"a": 1, "b": 2}.Merge(ErrorContext{"b": 3})
	assert.Equal(t, ErrorContext{"a": 1, "b": 3}, merged)
}

func TestCategory_IsUserFacing(t *testing.T) {
	assert.True(t, CategoryConfig.IsUserFacing())
	assert.True(t, CategoryValidation.IsUserFacing())
	assert.False(t, CategoryFileSystem.IsUserFacing())
	assert.False(t, CategoryInternal.IsUserFacing())
}
