package pipeline

import (
	"context"
	"html"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if pos := afterBodyTag(htmlContent, lowerHTML); pos != -1 {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}

	return styleBlock + htmlContent
}

// afterBodyTag returns the offset just past the opening <body ...> tag, or -1.
func afterBodyTag(htmlContent, lowerHTML string) int {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return -1
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return -1
	}
	return idx + closeIdx + 1
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>`

// WrapDocument wraps an HTML fragment into a standalone document titled
// title. Input that is already a full document is returned unchanged.
func WrapDocument(title, fragment string) string {
	if isFullDocument(fragment) {
		return fragment
	}
	if strings.TrimSpace(title) == "" {
		title = "Brochure"
	}

	var sb strings.Builder
	sb.Grow(len(documentTemplate) + len(title) + len(fragment) + 48)
	sb.WriteString(documentTemplate)
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>\n</head>\n<body>\n")
	sb.WriteString(fragment)
	sb.WriteString("\n</body>\n</html>")
	return sb.String()
}

func isFullDocument(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
}
