package brochure

import (
	"fmt"
	"strings"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/layout"
	"github.com/alnah/go-brochure/internal/render"
)

// ViewMode selects how pages are arranged on screen.
type ViewMode = render.ViewMode

// View modes.
const (
	Portrait  = render.Portrait
	Landscape = render.Landscape
)

// ParseViewMode parses "portrait" or "landscape". An empty string yields Portrait.
func ParseViewMode(s string) (ViewMode, error) {
	return render.ParseViewMode(s)
}

// Backend names the headless browser driver used for PDF export.
type Backend string

// Supported PDF backends.
const (
	BackendRod      Backend = "rod"
	BackendChromedp Backend = "chromedp"
)

// ParseBackend parses a backend name, case-insensitively. Empty means BackendRod.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendRod:
		return BackendRod, nil
	case BackendChromedp:
		return BackendChromedp, nil
	default:
		return "", fmt.Errorf("%w: %q (must be rod or chromedp)", ErrInvalidBackend, s)
	}
}

// PageDescriptor describes one planned page without its markup.
type PageDescriptor struct {
	Number         int      `json:"number"`
	Kind           string   `json:"kind"`
	AmenityIDs     []string `json:"amenityIds,omitempty"`
	FloorPlanIDs   []string `json:"floorPlanIds,omitempty"`
	ShowMasterPlan bool     `json:"showMasterPlan,omitempty"`
	IsLastGroup    bool     `json:"isLastGroup,omitempty"`
	ShowContact    bool     `json:"showContact,omitempty"`
	ShowDisclaimer bool     `json:"showDisclaimer,omitempty"`
}

// Plan returns the page sequence for b. It needs no templates or browser.
func Plan(b content.Brochure) []PageDescriptor {
	return describe(layout.Plan(b))
}

func describe(pages []layout.Page) []PageDescriptor {
	out := make([]PageDescriptor, len(pages))
	for i, p := range pages {
		d := PageDescriptor{
			Number:         i + 1,
			Kind:           p.Kind.String(),
			ShowMasterPlan: p.ShowMasterPlan,
			IsLastGroup:    p.IsLastGroup,
			ShowContact:    p.ShowContact,
			ShowDisclaimer: p.ShowDisclaimer,
		}
		for _, a := range p.Amenities {
			d.AmenityIDs = append(d.AmenityIDs, a.ID)
		}
		for _, fp := range p.FloorPlans {
			d.FloorPlanIDs = append(d.FloorPlanIDs, fp.ID)
		}
		out[i] = d
	}
	return out
}

// ExportOptions controls a single export.
type ExportOptions struct {
	// Title names the PDF document and its file. Empty falls back to the
	// brochure title, then to "Brochure".
	Title string

	// Mode is the arrangement the markup is rendered in. Print styles
	// flatten spreads, so both modes yield one page per A4 sheet.
	Mode ViewMode

	// Sanitize filters the fragment through the HTML policy before printing.
	// Enable it for markup that did not come from this package's renderer.
	Sanitize bool
}

// ExportResult is the output of an export.
type ExportResult struct {
	PDF         []byte
	HTML        []byte // printed document, for debugging
	Filename    string
	ContentType string
}

// ContentTypePDF is the media type of exported documents.
const ContentTypePDF = "application/pdf"
