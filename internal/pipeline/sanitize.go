package pipeline

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips scripts, event handlers and unknown URL schemes from
// markup received from outside the renderer, keeping the layout classes,
// data attributes and embedded images the stylesheet depends on.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("section", "article", "header", "footer", "div", "span", "dl", "dt", "dd", "figure", "figcaption")
	policy.AllowAttrs("class", "id", "aria-hidden", "role").Globally()
	policy.AllowDataAttributes()
	policy.AllowDataURIImages()
	policy.AllowStyles("grid-column", "white-space").Globally()
	policy.RequireNoFollowOnLinks(true)
	return &Sanitizer{policy: policy}
}

// Sanitize returns htmlContent with disallowed markup removed.
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
