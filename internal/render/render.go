// Package render turns planned pages into fixed-size A4 page markup.
//
// Each page is a <section class="page"> sized by the stylesheet to
// 210mm x 297mm with clipped overflow. Image slots follow one policy
// everywhere: real images are drawn, placeholder sentinels become a dashed
// box marked data-print-exclude, and absent images degrade per slot.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/assets"
	"github.com/alnah/go-brochure/internal/layout"
	"github.com/alnah/go-brochure/internal/richtext"
)

// Disclaimer is printed in the footer of the last page.
const Disclaimer = "Disclaimer: This brochure is for illustrative purposes only and does not constitute " +
	"a legal offering. All specifications, plans, and images are indicative and subject to change by " +
	"authorities or the developer without prior notice."

// ContainerID is the id of the element wrapping all rendered pages.
const ContainerID = "brochure-container"

// Page header bands.
const (
	headerLocation   = "Location & Connectivity"
	headerAmenities  = "Amenities & Master Plan"
	headerFloorPlans = "Floor Plans & Contact"
)

// Renderer renders page descriptors with a parsed template set.
type Renderer struct {
	tmpl             *template.Template
	prose            *richtext.Renderer
	placeholderHosts []string
	disclaimer       string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPlaceholderHosts overrides the hosts recognized as placeholder images.
func WithPlaceholderHosts(hosts []string) Option {
	return func(r *Renderer) {
		if len(hosts) > 0 {
			r.placeholderHosts = hosts
		}
	}
}

// WithDisclaimer overrides the footer disclaimer text.
func WithDisclaimer(text string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(text) != "" {
			r.disclaimer = text
		}
	}
}

// NewRenderer parses ts into a Renderer.
func NewRenderer(ts *assets.TemplateSet, opts ...Option) (*Renderer, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}

	root, err := template.New(assets.TemplatePartials).Parse(ts.Partials)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, assets.TemplatePartials, err)
	}
	for name, body := range ts.Pages() {
		if _, err := root.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
	}

	r := &Renderer{
		tmpl:             root,
		prose:            richtext.New(),
		placeholderHosts: content.PlaceholderHosts,
		disclaimer:       Disclaimer,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RenderPage renders the page at position index (0-based) of a planned sequence.
func (r *Renderer) RenderPage(page layout.Page, index int, b content.Brochure) (template.HTML, error) {
	name, err := templateFor(page.Kind)
	if err != nil {
		return "", err
	}
	view, err := r.buildView(page, index, b)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, view); err != nil {
		return "", fmt.Errorf("%w: page %d (%s): %v", ErrPageRender, index+1, page.Kind, err)
	}
	// #nosec G203 -- produced by html/template
	return template.HTML(buf.String()), nil
}

// RenderPages renders every page of a planned sequence in order.
func (r *Renderer) RenderPages(ctx context.Context, pages []layout.Page, b content.Brochure) ([]template.HTML, error) {
	out := make([]template.HTML, 0, len(pages))
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := r.RenderPage(p, i, b)
		if err != nil {
			return nil, err
		}
		out = append(out, html)
	}
	return out, nil
}

// RenderDocument renders pages into the brochure container: a vertical stack
// in portrait mode, two-page spreads in landscape mode.
func (r *Renderer) RenderDocument(ctx context.Context, pages []layout.Page, b content.Brochure, mode ViewMode) (string, error) {
	if mode == "" {
		mode = Portrait
	}
	if mode != Portrait && mode != Landscape {
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}

	rendered, err := r.RenderPages(ctx, pages, b)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div id="%s" class="brochure brochure--%s" data-view-mode="%s" data-page-count="%d">`,
		ContainerID, mode, mode, len(rendered))
	if mode == Landscape {
		for _, s := range ComposeSpreads(rendered) {
			sb.WriteString(string(s.HTML()))
		}
	} else {
		for _, p := range rendered {
			sb.WriteString(string(p))
		}
	}
	sb.WriteString(`</div>`)
	return sb.String(), nil
}

func templateFor(k layout.Kind) (string, error) {
	switch k {
	case layout.KindCover:
		return assets.TemplateCover, nil
	case layout.KindLocation:
		return assets.TemplateLocation, nil
	case layout.KindAmenities, layout.KindAmenitiesOverflow:
		return assets.TemplateAmenities, nil
	case layout.KindFloorPlanGroup:
		return assets.TemplateFloorPlans, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownPageKind, int(k))
	}
}
