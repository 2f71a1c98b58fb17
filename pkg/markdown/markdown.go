package markdown

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md     goldmark.Markdown
	policy *bluemonday.Policy
	once   sync.Once
)

func initRenderer() {
	once.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)

		policy = bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("code", "pre")
		policy.RequireNoFollowOnLinks(true)
	})
}

// Render converts article markdown to sanitized HTML. Raw HTML embedded
// in the markdown survives conversion but not sanitization: scripts,
// event handlers and javascript: URLs are always stripped.
func Render(source string) (string, error) {
	initRenderer()

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// Plain strips all markup from the rendered markdown, leaving plain
// text. Used for article previews and meta descriptions.
func Plain(source string) (string, error) {
	initRenderer()

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return bluemonday.StrictPolicy().Sanitize(buf.String()), nil
}
