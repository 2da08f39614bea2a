package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PrintExcludeSelector matches editor-only nodes that never reach print.
const PrintExcludeSelector = "[data-print-exclude]"

// ErrHTMLParse indicates markup could not be parsed or serialized.
var ErrHTMLParse = errors.New("HTML parsing failed")

// StripPrintExcluded removes every node matching PrintExcludeSelector,
// including its subtree. Fragments stay fragments; full documents keep their
// head and doctype.
func StripPrintExcluded(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !strings.Contains(htmlContent, "data-print-exclude") {
		return htmlContent, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}
	doc.Find(PrintExcludeSelector).Remove()

	var out string
	if isFullDocument(htmlContent) {
		out, err = doc.Html()
	} else {
		out, err = doc.Find("body").Html()
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}
	return out, nil
}
