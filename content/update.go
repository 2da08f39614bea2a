package content

import (
	"fmt"
	"sort"
)

// Scalar field paths accepted by SetField. Paths mirror the JSON layout.
const (
	PathBrochureTitle = "meta.brochureTitle"

	PathBuilderLogoImage       = "page1.builderLogoImage"
	PathBuilderLogoImageAIHint = "page1.builderLogoImageAiHint"
	PathLogoTextLine1          = "page1.logoTextLine1"
	PathLogoTextLine2          = "page1.logoTextLine2"
	PathTagline                = "page1.tagline"
	PathMainTitle              = "page1.mainTitle"
	PathSubTitle               = "page1.subTitle"
	PathBuildingImage          = "page1.buildingImage"
	PathBuildingImageAIHint    = "page1.buildingImageAiHint"
	PathIntroHeading           = "page1.introHeading"
	PathIntroPara1             = "page1.introPara1"
	PathIntroPara2             = "page1.introPara2"
	PathDeveloperHeading       = "page1.developerHeading"
	PathDeveloperPara          = "page1.developerPara"

	PathSiteAddressHeading            = "page2.siteAddressHeading"
	PathSiteAddress                   = "page2.siteAddress"
	PathLocationMapImage              = "page2.locationMapImage"
	PathLocationMapImageAIHint        = "page2.locationMapImageAiHint"
	PathConnectivityHeading           = "page2.connectivityHeading"
	PathConnectivityMetroRailwayTitle = "page2.connectivityMetroRailwayTitle"
	PathConnectivityMajorRoadsTitle   = "page2.connectivityMajorRoadsTitle"
	PathConnectivityHealthcareTitle   = "page2.connectivityHealthcareTitle"
	PathConnectivityEducationTitle    = "page2.connectivityEducationTitle"

	PathAmenitiesHeading      = "page3.amenitiesHeading"
	PathMasterPlanHeading     = "page3.masterPlanHeading"
	PathMasterPlanImage       = "page3.masterPlanImage"
	PathMasterPlanImageAIHint = "page3.masterPlanImageAiHint"

	PathFloorPlanHeading          = "page4.floorPlanHeading"
	PathContactInfoHeading        = "page4.contactInfoHeading"
	PathContactSalesOfficeTitle   = "page4.contactSalesOfficeTitle"
	PathContactSalesOfficePhone   = "page4.contactSalesOfficePhone"
	PathContactSalesOfficeEmail   = "page4.contactSalesOfficeEmail"
	PathContactSalesOfficeWebsite = "page4.contactSalesOfficeWebsite"
	PathContactSiteOfficeTitle    = "page4.contactSiteOfficeTitle"
	PathContactSiteOfficeAddress  = "page4.contactSiteOfficeAddress"
	PathContactSiteOfficeHours    = "page4.contactSiteOfficeHours"
	PathLegalInfoHeading          = "page4.legalInfoHeading"
	PathLegalReraNo               = "page4.legalReraNo"
	PathLegalReraLinkText         = "page4.legalReraLinkText"
	PathLegalDisclosure           = "page4.legalDisclosure"
)

// List field paths accepted by the list item operations.
const (
	PathConnectivityMetroRailwayItems = "page2.connectivityMetroRailwayItems"
	PathConnectivityMajorRoadsItems   = "page2.connectivityMajorRoadsItems"
	PathConnectivityHealthcareItems   = "page2.connectivityHealthcareItems"
	PathConnectivityEducationItems    = "page2.connectivityEducationItems"
)

type fieldAccessor func(*Brochure) *string

var scalarFields = map[string]fieldAccessor{
	PathBrochureTitle: func(b *Brochure) *string { return &b.Meta.BrochureTitle },

	PathBuilderLogoImage:       func(b *Brochure) *string { return (*string)(&b.Page1.BuilderLogoImage) },
	PathBuilderLogoImageAIHint: func(b *Brochure) *string { return &b.Page1.BuilderLogoImageAIHint },
	PathLogoTextLine1:          func(b *Brochure) *string { return &b.Page1.LogoTextLine1 },
	PathLogoTextLine2:          func(b *Brochure) *string { return &b.Page1.LogoTextLine2 },
	PathTagline:                func(b *Brochure) *string { return &b.Page1.Tagline },
	PathMainTitle:              func(b *Brochure) *string { return &b.Page1.MainTitle },
	PathSubTitle:               func(b *Brochure) *string { return &b.Page1.SubTitle },
	PathBuildingImage:          func(b *Brochure) *string { return (*string)(&b.Page1.BuildingImage) },
	PathBuildingImageAIHint:    func(b *Brochure) *string { return &b.Page1.BuildingImageAIHint },
	PathIntroHeading:           func(b *Brochure) *string { return &b.Page1.IntroHeading },
	PathIntroPara1:             func(b *Brochure) *string { return &b.Page1.IntroPara1 },
	PathIntroPara2:             func(b *Brochure) *string { return &b.Page1.IntroPara2 },
	PathDeveloperHeading:       func(b *Brochure) *string { return &b.Page1.DeveloperHeading },
	PathDeveloperPara:          func(b *Brochure) *string { return &b.Page1.DeveloperPara },

	PathSiteAddressHeading:            func(b *Brochure) *string { return &b.Page2.SiteAddressHeading },
	PathSiteAddress:                   func(b *Brochure) *string { return &b.Page2.SiteAddress },
	PathLocationMapImage:              func(b *Brochure) *string { return (*string)(&b.Page2.LocationMapImage) },
	PathLocationMapImageAIHint:        func(b *Brochure) *string { return &b.Page2.LocationMapImageAIHint },
	PathConnectivityHeading:           func(b *Brochure) *string { return &b.Page2.ConnectivityHeading },
	PathConnectivityMetroRailwayTitle: func(b *Brochure) *string { return &b.Page2.ConnectivityMetroRailwayTitle },
	PathConnectivityMajorRoadsTitle:   func(b *Brochure) *string { return &b.Page2.ConnectivityMajorRoadsTitle },
	PathConnectivityHealthcareTitle:   func(b *Brochure) *string { return &b.Page2.ConnectivityHealthcareTitle },
	PathConnectivityEducationTitle:    func(b *Brochure) *string { return &b.Page2.ConnectivityEducationTitle },

	PathAmenitiesHeading:      func(b *Brochure) *string { return &b.Page3.AmenitiesHeading },
	PathMasterPlanHeading:     func(b *Brochure) *string { return &b.Page3.MasterPlanHeading },
	PathMasterPlanImage:       func(b *Brochure) *string { return (*string)(&b.Page3.MasterPlanImage) },
	PathMasterPlanImageAIHint: func(b *Brochure) *string { return &b.Page3.MasterPlanImageAIHint },

	PathFloorPlanHeading:          func(b *Brochure) *string { return &b.Page4.FloorPlanHeading },
	PathContactInfoHeading:        func(b *Brochure) *string { return &b.Page4.ContactInfoHeading },
	PathContactSalesOfficeTitle:   func(b *Brochure) *string { return &b.Page4.ContactSalesOfficeTitle },
	PathContactSalesOfficePhone:   func(b *Brochure) *string { return &b.Page4.ContactSalesOfficePhone },
	PathContactSalesOfficeEmail:   func(b *Brochure) *string { return &b.Page4.ContactSalesOfficeEmail },
	PathContactSalesOfficeWebsite: func(b *Brochure) *string { return &b.Page4.ContactSalesOfficeWebsite },
	PathContactSiteOfficeTitle:    func(b *Brochure) *string { return &b.Page4.ContactSiteOfficeTitle },
	PathContactSiteOfficeAddress:  func(b *Brochure) *string { return &b.Page4.ContactSiteOfficeAddress },
	PathContactSiteOfficeHours:    func(b *Brochure) *string { return &b.Page4.ContactSiteOfficeHours },
	PathLegalInfoHeading:          func(b *Brochure) *string { return &b.Page4.LegalInfoHeading },
	PathLegalReraNo:               func(b *Brochure) *string { return &b.Page4.LegalReraNo },
	PathLegalReraLinkText:         func(b *Brochure) *string { return &b.Page4.LegalReraLinkText },
	PathLegalDisclosure:           func(b *Brochure) *string { return &b.Page4.LegalDisclosure },
}

type listAccessor func(*Brochure) *[]string

var listFields = map[string]listAccessor{
	PathConnectivityMetroRailwayItems: func(b *Brochure) *[]string { return &b.Page2.ConnectivityMetroRailwayItems },
	PathConnectivityMajorRoadsItems:   func(b *Brochure) *[]string { return &b.Page2.ConnectivityMajorRoadsItems },
	PathConnectivityHealthcareItems:   func(b *Brochure) *[]string { return &b.Page2.ConnectivityHealthcareItems },
	PathConnectivityEducationItems:    func(b *Brochure) *[]string { return &b.Page2.ConnectivityEducationItems },
}

// imageFields maps image paths to the path of their hint text.
var imageFields = map[string]string{
	PathBuilderLogoImage: PathBuilderLogoImageAIHint,
	PathBuildingImage:    PathBuildingImageAIHint,
	PathLocationMapImage: PathLocationMapImageAIHint,
	PathMasterPlanImage:  PathMasterPlanImageAIHint,
}

// Fields returns every scalar path accepted by SetField, sorted.
func Fields() []string {
	return sortedKeys(scalarFields)
}

// ListFields returns every list path accepted by the list item operations, sorted.
func ListFields() []string {
	return sortedKeys(listFields)
}

// IsImageField reports whether path addresses an image reference.
func IsImageField(path string) bool {
	_, ok := imageFields[path]
	return ok
}

// Field returns the current value at path.
func (b Brochure) Field(path string) (string, error) {
	acc, ok := scalarFields[path]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	return *acc(&b), nil
}

// SetField returns a copy of b with the scalar field at path set to value.
// An empty value clears an image field.
func (b Brochure) SetField(path, value string) (Brochure, error) {
	acc, ok := scalarFields[path]
	if !ok {
		return b, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	out := b.Clone()
	*acc(&out) = value
	return out, nil
}

// List returns a copy of the list at path.
func (b Brochure) List(path string) ([]string, error) {
	acc, ok := listFields[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	return cloneStrings(*acc(&b)), nil
}

// SetListItem returns a copy of b with item index of the list at path replaced.
func (b Brochure) SetListItem(path string, index int, value string) (Brochure, error) {
	return b.editList(path, func(items []string) ([]string, error) {
		return setAt(items, index, value)
	})
}

// AppendListItem returns a copy of b with value appended to the list at path.
func (b Brochure) AppendListItem(path, value string) (Brochure, error) {
	return b.editList(path, func(items []string) ([]string, error) {
		return append(items, value), nil
	})
}

// RemoveListItem returns a copy of b without item index of the list at path.
func (b Brochure) RemoveListItem(path string, index int) (Brochure, error) {
	return b.editList(path, func(items []string) ([]string, error) {
		return removeAt(items, index)
	})
}

func (b Brochure) editList(path string, fn func([]string) ([]string, error)) (Brochure, error) {
	acc, ok := listFields[path]
	if !ok {
		return b, fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	out := b.Clone()
	items, err := fn(*acc(&out))
	if err != nil {
		return b, fmt.Errorf("%s: %w", path, err)
	}
	*acc(&out) = items
	return out, nil
}

func setAt(items []string, index int, value string) ([]string, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(items))
	}
	items[index] = value
	return items, nil
}

func removeAt(items []string, index int) ([]string, error) {
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(items))
	}
	return append(items[:index], items[index+1:]...), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
