// Package layout plans how brochure content is distributed across fixed-size
// A4 pages.
//
// Plan is a pure function: the same content always yields the same page
// sequence, and the returned pages never alias the input's slices.
package layout

import "github.com/alnah/go-brochure/content"

// Distribution limits.
const (
	// AmenitiesWithPlanMax is the most amenities that fit on a page that also
	// shows the master plan.
	AmenitiesWithPlanMax = 4

	// AmenitiesWithoutPlanMax is the most amenities that fit on a page alone.
	AmenitiesWithoutPlanMax = 8

	// FloorPlansPerPage is the most floor plans laid out on one page.
	FloorPlansPerPage = 3
)

// Kind identifies the layout variant of a page.
type Kind int

const (
	KindCover Kind = iota
	KindLocation
	KindAmenities
	KindAmenitiesOverflow
	KindFloorPlanGroup
)

func (k Kind) String() string {
	switch k {
	case KindCover:
		return "cover"
	case KindLocation:
		return "location"
	case KindAmenities:
		return "amenities"
	case KindAmenitiesOverflow:
		return "amenities-overflow"
	case KindFloorPlanGroup:
		return "floor-plan-group"
	default:
		return "unknown"
	}
}

// IsAmenitiesFamily reports whether k is an amenities or amenities overflow page.
func (k Kind) IsAmenitiesFamily() bool {
	return k == KindAmenities || k == KindAmenitiesOverflow
}

// Page describes one physical page and the slice of content it renders.
type Page struct {
	Kind           Kind
	Amenities      []content.AmenityItem
	FloorPlans     []content.FloorPlanItem
	ShowMasterPlan bool
	IsLastGroup    bool
	ShowContact    bool
	ShowDisclaimer bool
}

// Plan returns the ordered page sequence for b.
func Plan(b content.Brochure) []Page {
	pages := []Page{
		{Kind: KindCover},
		{Kind: KindLocation},
	}

	pages = append(pages, planAmenities(b.Page3)...)
	pages = append(pages, planFloorPlans(b.Page4)...)

	// Floor plan groups follow the amenities pages, so the last match is the
	// last group when one exists. The block is attached even with blank
	// headings; HasContact only decides whether an empty group is emitted.
	if i := lastIndex(pages, func(p Page) bool {
		return p.Kind == KindFloorPlanGroup || p.Kind.IsAmenitiesFamily()
	}); i >= 0 {
		pages[i].ShowContact = true
	}

	pages[len(pages)-1].ShowDisclaimer = true
	return pages
}

func planAmenities(a content.Amenities) []Page {
	items := a.Amenities
	hasPlan := a.HasMasterPlan()

	if hasPlan && len(items) <= AmenitiesWithPlanMax {
		return []Page{{
			Kind:           KindAmenities,
			Amenities:      cloneAmenities(items),
			ShowMasterPlan: true,
		}}
	}

	split := min(len(items), AmenitiesWithoutPlanMax)
	pages := []Page{{
		Kind:      KindAmenities,
		Amenities: cloneAmenities(items[:split]),
	}}

	rest := items[split:]
	if len(rest) > 0 || hasPlan {
		pages = append(pages, Page{
			Kind:           KindAmenitiesOverflow,
			Amenities:      cloneAmenities(rest),
			ShowMasterPlan: hasPlan,
		})
	}
	return pages
}

func planFloorPlans(f content.FloorPlans) []Page {
	items := f.FloorPlans
	if len(items) == 0 {
		if !f.HasContact() {
			return nil
		}
		return []Page{{
			Kind:        KindFloorPlanGroup,
			FloorPlans:  []content.FloorPlanItem{},
			IsLastGroup: true,
		}}
	}

	pages := make([]Page, 0, (len(items)+FloorPlansPerPage-1)/FloorPlansPerPage)
	for start := 0; start < len(items); start += FloorPlansPerPage {
		end := min(start+FloorPlansPerPage, len(items))
		pages = append(pages, Page{
			Kind:        KindFloorPlanGroup,
			FloorPlans:  cloneFloorPlans(items[start:end]),
			IsLastGroup: end == len(items),
		})
	}
	return pages
}

func lastIndex(pages []Page, match func(Page) bool) int {
	for i := len(pages) - 1; i >= 0; i-- {
		if match(pages[i]) {
			return i
		}
	}
	return -1
}

func cloneAmenities(items []content.AmenityItem) []content.AmenityItem {
	out := make([]content.AmenityItem, len(items))
	copy(out, items)
	return out
}

func cloneFloorPlans(items []content.FloorPlanItem) []content.FloorPlanItem {
	out := make([]content.FloorPlanItem, len(items))
	for i, fp := range items {
		features := make([]string, len(fp.SpecsFeaturesItems))
		copy(features, fp.SpecsFeaturesItems)
		fp.SpecsFeaturesItems = features
		out[i] = fp
	}
	return out
}
