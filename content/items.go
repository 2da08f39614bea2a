package content

import "fmt"

// Amenity field names accepted by UpdateAmenity.
const (
	AmenityIcon        = "icon"
	AmenityText        = "text"
	AmenityImageURL    = "imageUrl"
	AmenityImageAIHint = "imageAiHint"
)

// Floor plan field names accepted by UpdateFloorPlan.
const (
	FloorPlanName               = "name"
	FloorPlanImage              = "floorPlanImage"
	FloorPlanImageAIHint        = "floorPlanImageAiHint"
	FloorPlanSpecsHeading       = "specsHeading"
	FloorPlanSpecsCarpetArea    = "specsCarpetArea"
	FloorPlanSpecsBuiltUpArea   = "specsBuiltUpArea"
	FloorPlanSpecsBalconyArea   = "specsBalconyArea"
	FloorPlanSpecsConfiguration = "specsConfiguration"
	FloorPlanSpecsFeaturesTitle = "specsFeaturesTitle"
)

var amenityFields = map[string]func(*AmenityItem) *string{
	AmenityIcon:        func(a *AmenityItem) *string { return &a.Icon },
	AmenityText:        func(a *AmenityItem) *string { return &a.Text },
	AmenityImageURL:    func(a *AmenityItem) *string { return (*string)(&a.ImageURL) },
	AmenityImageAIHint: func(a *AmenityItem) *string { return &a.ImageAIHint },
}

var floorPlanFields = map[string]func(*FloorPlanItem) *string{
	FloorPlanName:               func(f *FloorPlanItem) *string { return &f.Name },
	FloorPlanImage:              func(f *FloorPlanItem) *string { return (*string)(&f.FloorPlanImage) },
	FloorPlanImageAIHint:        func(f *FloorPlanItem) *string { return &f.FloorPlanImageAIHint },
	FloorPlanSpecsHeading:       func(f *FloorPlanItem) *string { return &f.SpecsHeading },
	FloorPlanSpecsCarpetArea:    func(f *FloorPlanItem) *string { return &f.SpecsCarpetArea },
	FloorPlanSpecsBuiltUpArea:   func(f *FloorPlanItem) *string { return &f.SpecsBuiltUpArea },
	FloorPlanSpecsBalconyArea:   func(f *FloorPlanItem) *string { return &f.SpecsBalconyArea },
	FloorPlanSpecsConfiguration: func(f *FloorPlanItem) *string { return &f.SpecsConfiguration },
	FloorPlanSpecsFeaturesTitle: func(f *FloorPlanItem) *string { return &f.SpecsFeaturesTitle },
}

// AmenityFields returns the field names accepted by UpdateAmenity.
func AmenityFields() []string { return sortedKeys(amenityFields) }

// FloorPlanFields returns the field names accepted by UpdateFloorPlan.
func FloorPlanFields() []string { return sortedKeys(floorPlanFields) }

// FindAmenity returns the amenity with the given id.
func (b Brochure) FindAmenity(id string) (AmenityItem, bool) {
	i := b.amenityIndex(id)
	if i < 0 {
		return AmenityItem{}, false
	}
	return b.Page3.Amenities[i], true
}

// FindFloorPlan returns the floor plan with the given id.
func (b Brochure) FindFloorPlan(id string) (FloorPlanItem, bool) {
	i := b.floorPlanIndex(id)
	if i < 0 {
		return FloorPlanItem{}, false
	}
	fp := b.Page4.FloorPlans[i]
	fp.SpecsFeaturesItems = cloneStrings(fp.SpecsFeaturesItems)
	return fp, true
}

// AddAmenity appends an amenity with a fresh id and placeholder content.
// It returns the new brochure and the new item's id.
func (b Brochure) AddAmenity() (Brochure, string) {
	out := b.Clone()
	item := newAmenity()
	out.Page3.Amenities = append(out.Page3.Amenities, item)
	return out, item.ID
}

// RemoveAmenity returns a copy of b without the amenity id.
func (b Brochure) RemoveAmenity(id string) (Brochure, error) {
	i := b.amenityIndex(id)
	if i < 0 {
		return b, fmt.Errorf("%w: amenity %q", ErrItemNotFound, id)
	}
	out := b.Clone()
	out.Page3.Amenities = append(out.Page3.Amenities[:i], out.Page3.Amenities[i+1:]...)
	return out, nil
}

// UpdateAmenity returns a copy of b with one field of amenity id set to value.
func (b Brochure) UpdateAmenity(id, field, value string) (Brochure, error) {
	acc, ok := amenityFields[field]
	if !ok {
		return b, fmt.Errorf("%w: amenity field %q", ErrUnknownField, field)
	}
	i := b.amenityIndex(id)
	if i < 0 {
		return b, fmt.Errorf("%w: amenity %q", ErrItemNotFound, id)
	}
	out := b.Clone()
	*acc(&out.Page3.Amenities[i]) = value
	return out, nil
}

// AddFloorPlan appends a floor plan with a fresh id and placeholder content.
// It returns the new brochure and the new item's id.
func (b Brochure) AddFloorPlan() (Brochure, string) {
	out := b.Clone()
	item := newFloorPlan()
	out.Page4.FloorPlans = append(out.Page4.FloorPlans, item)
	return out, item.ID
}

// RemoveFloorPlan returns a copy of b without the floor plan id.
func (b Brochure) RemoveFloorPlan(id string) (Brochure, error) {
	i := b.floorPlanIndex(id)
	if i < 0 {
		return b, fmt.Errorf("%w: floor plan %q", ErrItemNotFound, id)
	}
	out := b.Clone()
	out.Page4.FloorPlans = append(out.Page4.FloorPlans[:i], out.Page4.FloorPlans[i+1:]...)
	return out, nil
}

// UpdateFloorPlan returns a copy of b with one field of floor plan id set to value.
func (b Brochure) UpdateFloorPlan(id, field, value string) (Brochure, error) {
	acc, ok := floorPlanFields[field]
	if !ok {
		return b, fmt.Errorf("%w: floor plan field %q", ErrUnknownField, field)
	}
	i := b.floorPlanIndex(id)
	if i < 0 {
		return b, fmt.Errorf("%w: floor plan %q", ErrItemNotFound, id)
	}
	out := b.Clone()
	*acc(&out.Page4.FloorPlans[i]) = value
	return out, nil
}

// SetFloorPlanFeature replaces feature index of floor plan id.
func (b Brochure) SetFloorPlanFeature(id string, index int, value string) (Brochure, error) {
	return b.editFeatures(id, func(items []string) ([]string, error) {
		return setAt(items, index, value)
	})
}

// AppendFloorPlanFeature appends a feature to floor plan id.
func (b Brochure) AppendFloorPlanFeature(id, value string) (Brochure, error) {
	return b.editFeatures(id, func(items []string) ([]string, error) {
		return append(items, value), nil
	})
}

// RemoveFloorPlanFeature removes feature index of floor plan id.
func (b Brochure) RemoveFloorPlanFeature(id string, index int) (Brochure, error) {
	return b.editFeatures(id, func(items []string) ([]string, error) {
		return removeAt(items, index)
	})
}

func (b Brochure) editFeatures(id string, fn func([]string) ([]string, error)) (Brochure, error) {
	i := b.floorPlanIndex(id)
	if i < 0 {
		return b, fmt.Errorf("%w: floor plan %q", ErrItemNotFound, id)
	}
	out := b.Clone()
	items, err := fn(out.Page4.FloorPlans[i].SpecsFeaturesItems)
	if err != nil {
		return b, fmt.Errorf("floor plan %q features: %w", id, err)
	}
	out.Page4.FloorPlans[i].SpecsFeaturesItems = items
	return out, nil
}

func (b Brochure) amenityIndex(id string) int {
	for i, a := range b.Page3.Amenities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (b Brochure) floorPlanIndex(id string) int {
	for i, fp := range b.Page4.FloorPlans {
		if fp.ID == id {
			return i
		}
	}
	return -1
}
