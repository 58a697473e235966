package mdcheck_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/softbreak/internal/mdcheck"
)

func TestOutline(t *testing.T) {
	assert.Equal(t, []string{
		"Document",
		"  Heading1",
		"  Paragraph",
	}, mdcheck.Outline([]byte("# Title\n\nsome text\n")))
}

func TestCompare(t *testing.T) {
	t.Run("soft break in a paragraph", func(t *testing.T) {
		assert.NoError(t, mdcheck.Compare(
			[]byte("one two three\n"),
			[]byte("one two\nthree\n"),
		))
	})

	t.Run("fenced code kept", func(t *testing.T) {
		assert.NoError(t, mdcheck.Compare(
			[]byte("```\ncode here\n```\n\none two three\n"),
			[]byte("```\ncode here\n```\n\none two\nthree\n"),
		))
	})

	t.Run("new heading", func(t *testing.T) {
		err := mdcheck.Compare(
			[]byte("one\ntwo\n"),
			[]byte("# one\ntwo\n"),
		)
		var mm *mdcheck.MismatchError
		require.True(t, errors.As(err, &mm), "expected a mismatch, got %v", err)
		assert.Equal(t, 1, mm.Index)
		assert.Equal(t, "  Paragraph", mm.Before)
		assert.Equal(t, "  Heading1", mm.After)
	})
}
