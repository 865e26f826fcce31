package clipdown_test

import (
	"strings"
	"testing"

	"github.com/mjarosz/clipdown"
	"github.com/stretchr/testify/assert"
)

func TestSafeFilename(t *testing.T) {
	t.Parallel()

	t.Run("passes plain titles through", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Getting Started", clipdown.SafeFilename("Getting Started"))
	})

	t.Run("drops filesystem-illegal characters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Q&A what next", clipdown.SafeFilename(`Q&A: what/next?`))
	})

	t.Run("collapses whitespace runs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "a b c", clipdown.SafeFilename("a \t b\n\nc"))
	})

	t.Run("trims leading and trailing dots and spaces", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "hidden", clipdown.SafeFilename("  .hidden. "))
	})

	t.Run("falls back to Untitled", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Untitled", clipdown.SafeFilename(""))
		assert.Equal(t, "Untitled", clipdown.SafeFilename(`<>:"|?*`))
		assert.Equal(t, "Untitled", clipdown.SafeFilename("..."))
	})

	t.Run("bounds very long titles", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("word ", 100)

		name := clipdown.SafeFilename(long)

		assert.LessOrEqual(t, len([]rune(name)), 120)
		assert.NotEmpty(t, name)
	})

	t.Run("keeps unicode letters", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Über Größen", clipdown.SafeFilename("Über Größen"))
	})
}
