package render

import (
	"html/template"
	"strings"

	"github.com/alnah/go-brochure/content"
)

// SlotState selects how an image slot is drawn.
type SlotState string

const (
	// SlotImage draws the referenced image.
	SlotImage SlotState = "image"
	// SlotEmpty draws the dashed empty-state box, excluded from print.
	SlotEmpty SlotState = "empty"
	// SlotIcon draws the amenity glyph in place of a missing image.
	SlotIcon SlotState = "icon"
	// SlotNone draws nothing; a neighbouring text label stands in.
	SlotNone SlotState = "none"
)

// Fit is the object-fit applied to a real image.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
)

// Fallback selects what an absent image degrades to.
type Fallback int

const (
	FallbackBox Fallback = iota
	FallbackText
	FallbackIcon
)

// SlotSpec describes one image slot on a page.
type SlotSpec struct {
	Class    string
	Fit      Fit
	Alt      string
	Fallback Fallback
}

// Slot is the view model for one image slot.
type Slot struct {
	State SlotState
	Class string
	Src   template.URL
	Fit   Fit
	Alt   string
	Label string
	Icon  string
}

// PrintExcluded reports whether the slot renders an editor-only box.
func (s Slot) PrintExcluded() bool {
	return s.State == SlotEmpty
}

// slotFor applies the image-slot policy to ref.
//
// hasText reports whether a text fallback is available for FallbackText, and
// icon is the glyph for FallbackIcon.
func (r *Renderer) slotFor(ref content.ImageRef, hint string, spec SlotSpec, hasText bool, icon string) Slot {
	s := Slot{
		Class: spec.Class,
		Fit:   spec.Fit,
		Alt:   spec.Alt,
		Label: strings.TrimSpace(hint),
	}
	if s.Label == "" {
		s.Label = spec.Alt
	}

	switch content.ClassifyImage(string(ref), r.placeholderHosts) {
	case content.ImageEmbedded, content.ImageLinked:
		s.State = SlotImage
		// #nosec G203 -- ref is classified as a data:image URI or an http(s) URL
		s.Src = template.URL(strings.TrimSpace(string(ref)))
		if hint != "" {
			s.Alt = hint
		}
		return s
	case content.ImagePlaceholder:
		s.State = SlotEmpty
		return s
	}

	switch {
	case spec.Fallback == FallbackText && hasText:
		s.State = SlotNone
	case spec.Fallback == FallbackIcon && strings.TrimSpace(icon) != "":
		s.State = SlotIcon
		s.Icon = icon
	default:
		s.State = SlotEmpty
	}
	return s
}

// Slot specs per image field. Photos fill their box, plans and logos fit inside it.
var (
	specLogo       = SlotSpec{Class: "cover__logo", Fit: FitContain, Alt: "Builder logo", Fallback: FallbackText}
	specBuilding   = SlotSpec{Class: "cover__building", Fit: FitCover, Alt: "Building photo"}
	specMap        = SlotSpec{Class: "location__map", Fit: FitCover, Alt: "Location map"}
	specMasterPlan = SlotSpec{Class: "master-plan__image", Fit: FitContain, Alt: "Master plan"}
	specAmenity    = SlotSpec{Class: "amenity__image", Fit: FitCover, Alt: "Amenity photo", Fallback: FallbackIcon}
	specFloorPlan  = SlotSpec{Class: "floor-plan__image", Fit: FitContain, Alt: "Floor plan"}
)
