// Package richtext renders the Markdown subset allowed in brochure prose
// fields (emphasis, links, line breaks, short lists) to sanitized HTML.
package richtext

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates a prose field could not be rendered.
var ErrRender = errors.New("rich text rendering failed")

// Renderer converts prose fields to HTML safe for embedding in page templates.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Renderer.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &Renderer{md: md, policy: newProsePolicy()}
}

// newProsePolicy allows inline formatting and simple blocks only. Headings,
// images and tables would break the fixed page layout.
func newProsePolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "em", "strong", "del", "s", "ul", "ol", "li", "code", "span")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Render converts src to sanitized HTML. Blank input yields an empty result.
func (r *Renderer) Render(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	// #nosec G203 -- output is sanitized by the bluemonday policy
	return template.HTML(strings.TrimSpace(r.policy.Sanitize(buf.String()))), nil
}

// Sanitize applies the prose policy to an HTML snippet.
func (r *Renderer) Sanitize(s string) template.HTML {
	// #nosec G203 -- output is sanitized by the bluemonday policy
	return template.HTML(r.policy.Sanitize(s))
}
