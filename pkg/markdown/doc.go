// Package markdown renders article content to sanitized HTML.
//
// Article bodies are author-supplied markdown and may embed raw HTML,
// so every render passes through a sanitization policy before the
// result is handed to a template. The policy allows the usual
// user-generated-content formatting (headings, emphasis, lists, code
// blocks, links, images) and strips everything executable.
package markdown
