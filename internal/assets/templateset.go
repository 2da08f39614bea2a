package assets

import "fmt"

// Template names making up a template set. Each is a file {name}.html.
const (
	TemplatePartials   = "partials"
	TemplateCover      = "cover"
	TemplateLocation   = "location"
	TemplateAmenities  = "amenities"
	TemplateFloorPlans = "floorplans"
)

// RequiredTemplates lists every template a complete set must provide.
var RequiredTemplates = []string{
	TemplatePartials,
	TemplateCover,
	TemplateLocation,
	TemplateAmenities,
	TemplateFloorPlans,
}

// TemplateSet holds the HTML templates for brochure pages. Partials defines
// the shared blocks (image slot, header, footer, contact) the page templates use.
type TemplateSet struct {
	Name       string
	Partials   string
	Cover      string
	Location   string
	Amenities  string
	FloorPlans string
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// Pages returns the page templates keyed by template name.
func (ts *TemplateSet) Pages() map[string]string {
	return map[string]string{
		TemplateCover:      ts.Cover,
		TemplateLocation:   ts.Location,
		TemplateAmenities:  ts.Amenities,
		TemplateFloorPlans: ts.FloorPlans,
	}
}

// Validate reports the first required template that is empty.
func (ts *TemplateSet) Validate() error {
	if ts == nil {
		return fmt.Errorf("%w: nil template set", ErrIncompleteTemplateSet)
	}
	if ts.Partials == "" {
		return fmt.Errorf("%w: %q missing %s.html", ErrIncompleteTemplateSet, ts.Name, TemplatePartials)
	}
	for name, body := range ts.Pages() {
		if body == "" {
			return fmt.Errorf("%w: %q missing %s.html", ErrIncompleteTemplateSet, ts.Name, name)
		}
	}
	return nil
}

// set assigns the template content for name.
func (ts *TemplateSet) set(name, body string) {
	switch name {
	case TemplatePartials:
		ts.Partials = body
	case TemplateCover:
		ts.Cover = body
	case TemplateLocation:
		ts.Location = body
	case TemplateAmenities:
		ts.Amenities = body
	case TemplateFloorPlans:
		ts.FloorPlans = body
	}
}
