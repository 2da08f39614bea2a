package render

import (
	"fmt"
	"html/template"
	"strings"
)

// ViewMode selects how pages are arranged for viewing. The physical page size
// never changes.
type ViewMode string

const (
	Portrait  ViewMode = "portrait"
	Landscape ViewMode = "landscape"
)

// ParseViewMode parses a view mode name. Empty input means Portrait.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Portrait:
		return Portrait, nil
	case Landscape:
		return Landscape, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

// blankPage fills the right half of a spread whose left page is the last one.
const blankPage template.HTML = `<div class="page page--blank" data-print-exclude="true" aria-hidden="true"></div>`

const spreadDivider template.HTML = `<div class="spread__divider" data-print-exclude="true" aria-hidden="true"></div>`

// Spread is two pages shown side by side.
type Spread struct {
	Left  template.HTML
	Right template.HTML
	// Blank is set when Right is the filler for an odd final page.
	Blank bool
}

// ComposeSpreads pairs pages (0,1), (2,3), ... An odd final page is paired
// with a blank filler so every spread has the same width.
func ComposeSpreads(pages []template.HTML) []Spread {
	spreads := make([]Spread, 0, (len(pages)+1)/2)
	for i := 0; i < len(pages); i += 2 {
		s := Spread{Left: pages[i]}
		if i+1 < len(pages) {
			s.Right = pages[i+1]
		} else {
			s.Right = blankPage
			s.Blank = true
		}
		spreads = append(spreads, s)
	}
	return spreads
}

// HTML renders the spread container.
func (s Spread) HTML() template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="spread">`)
	b.WriteString(string(s.Left))
	b.WriteString(string(spreadDivider))
	b.WriteString(string(s.Right))
	b.WriteString(`</div>`)
	// #nosec G203 -- concatenation of already-rendered template output
	return template.HTML(b.String())
}
