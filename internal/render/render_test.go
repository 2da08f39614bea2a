package render

import (
	"context"
	"errors"
	"html/template"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/assets"
	"github.com/alnah/go-brochure/internal/layout"
)

const pixel = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()

	ts, err := assets.NewEmbeddedLoader().LoadTemplateSet(assets.DefaultTemplateSetName)
	require.NoError(t, err)
	r, err := NewRenderer(ts, opts...)
	require.NoError(t, err)
	return r
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func amenities(n int) []content.AmenityItem {
	items := make([]content.AmenityItem, n)
	for i := range items {
		items[i] = content.AmenityItem{
			ID:       "a" + strconv.Itoa(i),
			Icon:     "*",
			Text:     "Amenity " + strconv.Itoa(i),
			ImageURL: content.ImageRef(content.PlaceholderURL),
		}
	}
	return items
}

func floorPlans(n int) []content.FloorPlanItem {
	items := make([]content.FloorPlanItem, n)
	for i := range items {
		items[i] = content.FloorPlanItem{
			ID:                 "f" + strconv.Itoa(i),
			Name:               "Type " + strconv.Itoa(i),
			FloorPlanImage:     content.ImageRef(content.PlaceholderURL),
			SpecsFeaturesItems: []string{"Balcony"},
		}
	}
	return items
}

func TestNewRenderer_Errors(t *testing.T) {
	t.Parallel()

	t.Run("incomplete set", func(t *testing.T) {
		t.Parallel()

		_, err := NewRenderer(&assets.TemplateSet{Name: "x", Partials: "p"})
		assert.ErrorIs(t, err, assets.ErrIncompleteTemplateSet)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		ts := &assets.TemplateSet{
			Name: "broken", Partials: "{{define \"slot\"}}{{end}}",
			Cover: "{{.Oops", Location: "l", Amenities: "a", FloorPlans: "f",
		}
		_, err := NewRenderer(ts)
		assert.ErrorIs(t, err, ErrTemplateParse)
	})
}

func TestRenderPage_Cover(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	b := content.Default()
	b.Page1.IntroPara1 = "Live **well**."

	html, err := r.RenderPage(layout.Page{Kind: layout.KindCover}, 0, b)
	require.NoError(t, err)

	doc := parseHTML(t, string(html))
	page := doc.Find("section.page")
	require.Equal(t, 1, page.Length())
	assert.Equal(t, "cover", page.AttrOr("data-page-kind", ""))
	assert.Equal(t, "1", page.AttrOr("data-page-number", ""))
	assert.Equal(t, b.Page1.MainTitle, strings.TrimSpace(doc.Find(".cover__title").Text()))
	assert.Equal(t, "well", doc.Find(".prose strong").First().Text())
}

func TestRenderPage_ImageSlotPolicy(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	tests := []struct {
		name       string
		building   content.ImageRef
		wantState  string
		wantImg    bool
		wantExcl   bool
		wantSrcPfx string
	}{
		{name: "embedded image", building: pixel, wantState: "image", wantImg: true, wantSrcPfx: "data:image/png"},
		{name: "linked image", building: "https://cdn.example.com/tower.jpg", wantState: "image", wantImg: true, wantSrcPfx: "https://cdn.example.com"},
		{name: "placeholder", building: content.PlaceholderURL, wantState: "empty", wantExcl: true},
		{name: "absent", building: "", wantState: "empty", wantExcl: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := content.Default()
			b.Page1.BuildingImage = tt.building

			html, err := r.RenderPage(layout.Page{Kind: layout.KindCover}, 0, b)
			require.NoError(t, err)

			slot := parseHTML(t, string(html)).Find(".cover__building")
			require.Equal(t, 1, slot.Length())
			assert.Equal(t, tt.wantState, slot.AttrOr("data-slot-state", ""))

			img := slot.Find("img")
			assert.Equal(t, tt.wantImg, img.Length() == 1)
			if tt.wantImg {
				assert.True(t, strings.HasPrefix(img.AttrOr("src", ""), tt.wantSrcPfx), "src = %q", img.AttrOr("src", ""))
				assert.Equal(t, "fit-cover", img.AttrOr("class", ""))
			}
			assert.Equal(t, tt.wantExcl, slot.Find(".image-empty[data-print-exclude]").Length() == 1)
		})
	}
}

func TestRenderPage_LogoFallsBackToText(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	b := content.Default()
	b.Page1.BuilderLogoImage = ""
	b.Page1.LogoTextLine1 = "ACME"

	html, err := r.RenderPage(layout.Page{Kind: layout.KindCover}, 0, b)
	require.NoError(t, err)

	doc := parseHTML(t, string(html))
	assert.Equal(t, 0, doc.Find(".cover__logo").Length())
	assert.Contains(t, doc.Find(".cover__logo-text").Text(), "ACME")
}

func TestRenderPage_AmenityGrid(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	tests := []struct {
		n        int
		wantCols int
	}{
		{n: 1, wantCols: 1},
		{n: 3, wantCols: 3},
		{n: 4, wantCols: 4},
		{n: 6, wantCols: 3},
		{n: 8, wantCols: 4},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.n), func(t *testing.T) {
			t.Parallel()

			b := content.Default()
			page := layout.Page{Kind: layout.KindAmenitiesOverflow, Amenities: amenities(tt.n)}

			html, err := r.RenderPage(page, 3, b)
			require.NoError(t, err)

			doc := parseHTML(t, string(html))
			grid := doc.Find(".amenity-grid")
			assert.True(t, grid.HasClass("amenity-grid--cols-"+strconv.Itoa(tt.wantCols)))
			assert.Equal(t, strconv.Itoa(tt.n), grid.AttrOr("data-amenity-count", ""))
			assert.Equal(t, tt.n, doc.Find(".amenity").Length())
			assert.Equal(t, 0, doc.Find("[data-master-plan]").Length())
		})
	}
}

func TestRenderPage_AmenityIconFallback(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	items := amenities(1)
	items[0].ImageURL = ""
	items[0].Icon = "🏊"

	html, err := r.RenderPage(layout.Page{Kind: layout.KindAmenities, Amenities: items}, 2, content.Default())
	require.NoError(t, err)

	slot := parseHTML(t, string(html)).Find(".amenity__image")
	assert.Equal(t, "icon", slot.AttrOr("data-slot-state", ""))
	assert.Equal(t, "🏊", slot.Find(".amenity__icon").Text())
}

func TestRenderPage_MasterPlanAndHeading(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	b := content.Default()

	first, err := r.RenderPage(layout.Page{Kind: layout.KindAmenities, Amenities: amenities(4), ShowMasterPlan: true}, 2, b)
	require.NoError(t, err)
	doc := parseHTML(t, string(first))
	assert.Equal(t, 1, doc.Find("[data-master-plan]").Length())
	assert.Contains(t, doc.Text(), b.Page3.AmenitiesHeading)
	assert.Equal(t, headerAmenities, doc.Find(".page__header").Text())

	overflow, err := r.RenderPage(layout.Page{Kind: layout.KindAmenitiesOverflow, Amenities: amenities(2)}, 3, b)
	require.NoError(t, err)
	assert.NotContains(t, parseHTML(t, string(overflow)).Find(".page__body").Text(), b.Page3.AmenitiesHeading)
}

func TestRenderPage_FloorPlanGroup(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	b := content.Default()
	b.Page4.FloorPlans = floorPlans(4)
	b.Page4.LegalDisclosure = "Subject to *approval*."

	pages := layout.Plan(b)
	groups := make([]layout.Page, 0, 2)
	for _, p := range pages {
		if p.Kind == layout.KindFloorPlanGroup {
			groups = append(groups, p)
		}
	}
	require.Len(t, groups, 2)

	first, err := r.RenderPage(groups[0], 4, b)
	require.NoError(t, err)
	doc := parseHTML(t, string(first))
	assert.Equal(t, 3, doc.Find(".floor-plan").Length())
	assert.Contains(t, doc.Find(".page__body").Text(), b.Page4.FloorPlanHeading)
	assert.Equal(t, 0, doc.Find("[data-contact]").Length())
	assert.Equal(t, 0, doc.Find("[data-disclaimer]").Length())

	last, err := r.RenderPage(groups[1], 5, b)
	require.NoError(t, err)
	doc = parseHTML(t, string(last))
	assert.Equal(t, 1, doc.Find(".floor-plan").Length())
	assert.NotContains(t, doc.Find(".page__body > h2").Text(), b.Page4.FloorPlanHeading)
	assert.Equal(t, 1, doc.Find("[data-contact]").Length())
	assert.Equal(t, "approval", doc.Find(".legal.prose em").Text())
	assert.Equal(t, Disclaimer, doc.Find("[data-disclaimer]").Text())
}

func TestRenderPage_EscapesContent(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	b := content.Default()
	b.Page1.MainTitle = `<script>alert(1)</script>`
	b.Page1.IntroPara1 = `<img src=x onerror=alert(1)>`

	html, err := r.RenderPage(layout.Page{Kind: layout.KindCover}, 0, b)
	require.NoError(t, err)

	doc := parseHTML(t, string(html))
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, 0, doc.Find("[onerror]").Length())
}

func TestRenderPage_UnknownKind(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	_, err := r.RenderPage(layout.Page{Kind: layout.Kind(99)}, 0, content.Default())
	assert.ErrorIs(t, err, ErrUnknownPageKind)
}

func TestRenderDocument(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	b := content.Default()
	pages := layout.Plan(b)

	t.Run("portrait stacks pages", func(t *testing.T) {
		t.Parallel()

		html, err := r.RenderDocument(context.Background(), pages, b, Portrait)
		require.NoError(t, err)

		doc := parseHTML(t, html)
		container := doc.Find("#" + ContainerID)
		assert.Equal(t, "portrait", container.AttrOr("data-view-mode", ""))
		assert.Equal(t, len(pages), container.Children().Filter("section.page").Length())
		assert.Equal(t, 0, doc.Find(".spread").Length())
		assert.Equal(t, 1, doc.Find("[data-disclaimer]").Length())
	})

	t.Run("landscape pairs pages", func(t *testing.T) {
		t.Parallel()

		html, err := r.RenderDocument(context.Background(), pages, b, Landscape)
		require.NoError(t, err)

		doc := parseHTML(t, html)
		assert.Equal(t, (len(pages)+1)/2, doc.Find(".spread").Length())
		assert.Equal(t, len(pages), doc.Find("section.page").Length())
		assert.Equal(t, len(pages)%2, doc.Find(".page--blank[data-print-exclude]").Length())
	})

	t.Run("invalid mode", func(t *testing.T) {
		t.Parallel()

		_, err := r.RenderDocument(context.Background(), pages, b, ViewMode("diagonal"))
		assert.ErrorIs(t, err, ErrInvalidViewMode)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := r.RenderDocument(ctx, pages, b, Portrait)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestComposeSpreads(t *testing.T) {
	t.Parallel()

	mk := func(n int) []template.HTML {
		out := make([]template.HTML, n)
		for i := range out {
			out[i] = template.HTML(`<section class="page" id="p` + strconv.Itoa(i) + `"></section>`)
		}
		return out
	}

	tests := []struct {
		pages     int
		want      int
		wantBlank bool
	}{
		{pages: 0, want: 0},
		{pages: 1, want: 1, wantBlank: true},
		{pages: 2, want: 1},
		{pages: 5, want: 3, wantBlank: true},
		{pages: 6, want: 3},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.pages), func(t *testing.T) {
			t.Parallel()

			spreads := ComposeSpreads(mk(tt.pages))
			require.Len(t, spreads, tt.want)
			for i, s := range spreads {
				assert.Contains(t, string(s.Left), `id="p`+strconv.Itoa(2*i)+`"`)
				isLast := i == len(spreads)-1
				assert.Equal(t, tt.wantBlank && isLast, s.Blank)
			}
		})
	}
}

func TestSpreadHTML_DividerExcluded(t *testing.T) {
	t.Parallel()

	s := ComposeSpreads([]template.HTML{`<section class="page"></section>`})[0]
	doc := parseHTML(t, string(s.HTML()))
	assert.Equal(t, 1, doc.Find(".spread > .spread__divider[data-print-exclude]").Length())
	assert.Equal(t, 1, doc.Find(".spread > .page--blank").Length())
}

func TestParseViewMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ViewMode
		wantErr bool
	}{
		{in: "", want: Portrait},
		{in: "portrait", want: Portrait},
		{in: " Landscape ", want: Landscape},
		{in: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseViewMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidViewMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGridColumns(t *testing.T) {
	t.Parallel()

	want := map[int]int{0: 1, 1: 1, 2: 2, 3: 3, 4: 4, 5: 3, 6: 3, 7: 4, 8: 4, 12: 4}
	for n, cols := range want {
		assert.Equal(t, cols, GridColumns(n), "GridColumns(%d)", n)
	}
}

func TestWithPlaceholderHosts(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, WithPlaceholderHosts([]string{"stub.example"}))
	b := content.Default()
	b.Page1.BuildingImage = "https://stub.example/a.png"

	html, err := r.RenderPage(layout.Page{Kind: layout.KindCover}, 0, b)
	require.NoError(t, err)
	assert.Equal(t, "empty", parseHTML(t, string(html)).Find(".cover__building").AttrOr("data-slot-state", ""))
}

func TestRenderPage_ContactOnAmenitiesWithoutFloorPlans(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	b := content.Default()
	b.Page4.FloorPlans = nil
	b.Page4.ContactInfoHeading = ""
	b.Page4.LegalInfoHeading = ""
	b.Page4.ContactSalesOfficePhone = "+91 22 5550 0101"

	pages := layout.Plan(b)
	last := pages[len(pages)-1]
	require.True(t, last.Kind.IsAmenitiesFamily(), "last kind = %s", last.Kind)

	html, err := r.RenderPage(last, len(pages)-1, b)
	require.NoError(t, err)
	doc := parseHTML(t, string(html))
	assert.Equal(t, 1, doc.Find("[data-contact]").Length())
	assert.Contains(t, doc.Find(".contact__office").Text(), "+91 22 5550 0101")
	assert.Equal(t, 1, doc.Find("[data-disclaimer]").Length())
}
