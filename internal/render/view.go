package render

import (
	"html/template"
	"strings"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/layout"
)

// pageView is the data passed to page templates.
type pageView struct {
	Kind   string
	Number int
	Header string
	B      content.Brochure

	// Cover
	Logo      Slot
	Building  Slot
	Intro1    template.HTML
	Intro2    template.HTML
	Developer template.HTML

	// Location
	Map      Slot
	Sections []content.ConnectivitySection

	// Amenities
	Amenities      []amenityView
	GridColumns    int
	Overflow       bool
	ShowMasterPlan bool
	MasterPlan     Slot

	// Floor plans
	FloorPlans []floorPlanView
	FirstGroup bool
	LastGroup  bool

	ShowContact    bool
	Disclosure     template.HTML
	ShowDisclaimer bool
	Disclaimer     string
}

type amenityView struct {
	content.AmenityItem
	Image Slot
}

type floorPlanView struct {
	content.FloorPlanItem
	Image Slot
}

func (r *Renderer) buildView(page layout.Page, index int, b content.Brochure) (pageView, error) {
	v := pageView{
		Kind:           page.Kind.String(),
		Number:         index + 1,
		B:              b,
		ShowContact:    page.ShowContact,
		ShowDisclaimer: page.ShowDisclaimer,
		Disclaimer:     r.disclaimer,
	}

	var err error
	switch page.Kind {
	case layout.KindCover:
		err = r.coverView(&v, b)
	case layout.KindLocation:
		v.Header = headerLocation
		v.Map = r.slotFor(b.Page2.LocationMapImage, b.Page2.LocationMapImageAIHint, specMap, false, "")
		v.Sections = visibleSections(b.Page2)
	case layout.KindAmenities, layout.KindAmenitiesOverflow:
		v.Header = headerAmenities
		v.Overflow = page.Kind == layout.KindAmenitiesOverflow
		v.GridColumns = GridColumns(len(page.Amenities))
		v.ShowMasterPlan = page.ShowMasterPlan
		v.MasterPlan = r.slotFor(b.Page3.MasterPlanImage, b.Page3.MasterPlanImageAIHint, specMasterPlan, false, "")
		v.Amenities = make([]amenityView, len(page.Amenities))
		for i, a := range page.Amenities {
			v.Amenities[i] = amenityView{
				AmenityItem: a,
				Image:       r.slotFor(a.ImageURL, a.ImageAIHint, specAmenity, false, a.Icon),
			}
		}
	case layout.KindFloorPlanGroup:
		v.Header = headerFloorPlans
		v.LastGroup = page.IsLastGroup
		v.FirstGroup = isFirstGroup(page, b)
		v.FloorPlans = make([]floorPlanView, len(page.FloorPlans))
		for i, fp := range page.FloorPlans {
			v.FloorPlans[i] = floorPlanView{
				FloorPlanItem: fp,
				Image:         r.slotFor(fp.FloorPlanImage, fp.FloorPlanImageAIHint, specFloorPlan, false, ""),
			}
		}
	}
	if err != nil {
		return v, err
	}

	if page.ShowContact {
		v.Disclosure, err = r.prose.Render(b.Page4.LegalDisclosure)
	}
	return v, err
}

func (r *Renderer) coverView(v *pageView, b content.Brochure) error {
	c := b.Page1
	hasLogoText := strings.TrimSpace(c.LogoTextLine1) != "" || strings.TrimSpace(c.LogoTextLine2) != ""
	v.Logo = r.slotFor(c.BuilderLogoImage, c.BuilderLogoImageAIHint, specLogo, hasLogoText, "")
	v.Building = r.slotFor(c.BuildingImage, c.BuildingImageAIHint, specBuilding, false, "")

	var err error
	if v.Intro1, err = r.prose.Render(c.IntroPara1); err != nil {
		return err
	}
	if v.Intro2, err = r.prose.Render(c.IntroPara2); err != nil {
		return err
	}
	v.Developer, err = r.prose.Render(c.DeveloperPara)
	return err
}

// visibleSections drops connectivity sections with neither title nor items.
func visibleSections(l content.Location) []content.ConnectivitySection {
	all := l.Sections()
	out := all[:0]
	for _, s := range all {
		if strings.TrimSpace(s.Title) != "" || len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// isFirstGroup reports whether page holds the first floor plan of b, or is
// the empty contact-only group.
func isFirstGroup(page layout.Page, b content.Brochure) bool {
	if len(page.FloorPlans) == 0 || len(b.Page4.FloorPlans) == 0 {
		return true
	}
	return page.FloorPlans[0].ID == b.Page4.FloorPlans[0].ID
}
