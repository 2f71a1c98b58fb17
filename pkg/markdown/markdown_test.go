package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nbmdigital/siteclient/pkg/markdown"
)

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("converts markdown to html", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.Render("# Title\n\nSome **bold** text.")
		require.NoError(t, err)
		require.Contains(t, out, "<h1>Title</h1>")
		require.Contains(t, out, "<strong>bold</strong>")
	})

	t.Run("supports gfm tables and strikethrough", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.Render("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~")
		require.NoError(t, err)
		require.Contains(t, out, "<table>")
		require.Contains(t, out, "<del>gone</del>")
	})

	t.Run("strips embedded scripts", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.Render("hello\n\n<script>alert(1)</script>")
		require.NoError(t, err)
		require.NotContains(t, out, "<script>")
		require.NotContains(t, out, "alert(1)")
		require.Contains(t, out, "hello")
	})

	t.Run("strips event handlers and javascript urls", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.Render(`<img src="x" onerror="alert(1)"> [x](javascript:alert(1))`)
		require.NoError(t, err)
		require.NotContains(t, out, "onerror")
		require.NotContains(t, out, "javascript:")
	})

	t.Run("links carry rel nofollow", func(t *testing.T) {
		t.Parallel()

		out, err := markdown.Render("[site](https://example.com)")
		require.NoError(t, err)
		require.Contains(t, out, `href="https://example.com"`)
		require.Contains(t, out, "nofollow")
	})
}

func TestPlain(t *testing.T) {
	t.Parallel()

	out, err := markdown.Plain("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	require.NotContains(t, out, "<")
	require.Contains(t, out, "Title")
	require.Contains(t, out, "bold")
}
