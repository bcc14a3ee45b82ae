package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	base := NewStd("file missing")
	err := New(base).
		Component("discover").
		Category(CategoryNotFound).
		Context("path", "/data/patches").
		Build()

	assert.Equal(t, "file missing", err.Error())
	assert.Equal(t, "discover", err.Component)
	assert.Equal(t, CategoryNotFound, err.Category)
	assert.Equal(t, "/data/patches", err.Context["path"])
	assert.True(t, Is(err, base))
}

func TestDefaultCategory(t *testing.T) {
	t.Parallel()

	err := Newf("something went wrong: %d", 42).Build()
	assert.Equal(t, CategoryGeneric, err.Category)
	assert.Equal(t, "something went wrong: 42", err.Error())
}

func TestCategoryMatching(t *testing.T) {
	t.Parallel()

	err := Newf("missing column lon").Category(CategoryValidation).Build()
	sentinel := &EnhancedError{Category: CategoryValidation}

	assert.True(t, Is(err, sentinel))
	assert.True(t, HasCategory(err, CategoryValidation))
	assert.False(t, HasCategory(err, CategoryNotFound))
}

func TestWrappedChain(t *testing.T) {
	t.Parallel()

	inner := Newf("no such directory").Category(CategoryNotFound).Build()
	outer := fmt.Errorf("discover failed: %w", inner)

	require.True(t, HasCategory(outer, CategoryNotFound))

	var ee *EnhancedError
	require.True(t, As(outer, &ee))
	assert.Equal(t, CategoryNotFound, ee.Category)
}
