// Package content defines the brochure content model and the copy-on-write
// operations that edit it.
//
// A Brochure is a plain value. Every update operation returns a new Brochure
// and leaves the receiver untouched, so a snapshot handed to the renderer can
// never change underneath it.
package content

// Brochure is the root aggregate holding every text and image field of a brochure.
type Brochure struct {
	Meta  Meta       `json:"meta"`
	Page1 Cover      `json:"page1"`
	Page2 Location   `json:"page2"`
	Page3 Amenities  `json:"page3"`
	Page4 FloorPlans `json:"page4"`
}

// Meta holds document-level metadata.
type Meta struct {
	BrochureTitle string `json:"brochureTitle"`
}

// Cover holds the first page: branding, headline and introduction copy.
type Cover struct {
	BuilderLogoImage       ImageRef `json:"builderLogoImage,omitempty"`
	BuilderLogoImageAIHint string   `json:"builderLogoImageAiHint,omitempty"`
	LogoTextLine1          string   `json:"logoTextLine1"`
	LogoTextLine2          string   `json:"logoTextLine2"`
	Tagline                string   `json:"tagline"`
	MainTitle              string   `json:"mainTitle"`
	SubTitle               string   `json:"subTitle"`
	BuildingImage          ImageRef `json:"buildingImage,omitempty"`
	BuildingImageAIHint    string   `json:"buildingImageAiHint,omitempty"`
	IntroHeading           string   `json:"introHeading"`
	IntroPara1             string   `json:"introPara1"`
	IntroPara2             string   `json:"introPara2"`
	DeveloperHeading       string   `json:"developerHeading"`
	DeveloperPara          string   `json:"developerPara"`
}

// Location holds the site address, map and the four connectivity sections.
type Location struct {
	SiteAddressHeading            string   `json:"siteAddressHeading"`
	SiteAddress                   string   `json:"siteAddress"`
	LocationMapImage              ImageRef `json:"locationMapImage,omitempty"`
	LocationMapImageAIHint        string   `json:"locationMapImageAiHint,omitempty"`
	ConnectivityHeading           string   `json:"connectivityHeading"`
	ConnectivityMetroRailwayTitle string   `json:"connectivityMetroRailwayTitle"`
	ConnectivityMetroRailwayItems []string `json:"connectivityMetroRailwayItems"`
	ConnectivityMajorRoadsTitle   string   `json:"connectivityMajorRoadsTitle"`
	ConnectivityMajorRoadsItems   []string `json:"connectivityMajorRoadsItems"`
	ConnectivityHealthcareTitle   string   `json:"connectivityHealthcareTitle"`
	ConnectivityHealthcareItems   []string `json:"connectivityHealthcareItems"`
	ConnectivityEducationTitle    string   `json:"connectivityEducationTitle"`
	ConnectivityEducationItems    []string `json:"connectivityEducationItems"`
}

// ConnectivitySection is a titled list of nearby points of interest.
type ConnectivitySection struct {
	Key   string
	Title string
	Items []string
}

// Sections returns the connectivity sections in display order:
// metro/railway, major roads, healthcare, education.
func (l Location) Sections() []ConnectivitySection {
	return []ConnectivitySection{
		{Key: "metroRailway", Title: l.ConnectivityMetroRailwayTitle, Items: l.ConnectivityMetroRailwayItems},
		{Key: "majorRoads", Title: l.ConnectivityMajorRoadsTitle, Items: l.ConnectivityMajorRoadsItems},
		{Key: "healthcare", Title: l.ConnectivityHealthcareTitle, Items: l.ConnectivityHealthcareItems},
		{Key: "education", Title: l.ConnectivityEducationTitle, Items: l.ConnectivityEducationItems},
	}
}

// Amenities holds the amenity list and the master plan.
type Amenities struct {
	AmenitiesHeading      string        `json:"amenitiesHeading"`
	Amenities             []AmenityItem `json:"amenities"`
	MasterPlanHeading     string        `json:"masterPlanHeading"`
	MasterPlanImage       ImageRef      `json:"masterPlanImage,omitempty"`
	MasterPlanImageAIHint string        `json:"masterPlanImageAiHint,omitempty"`
}

// AmenityItem is one entry of the amenity grid. ID is assigned at creation
// and never reused.
type AmenityItem struct {
	ID          string   `json:"id"`
	Icon        string   `json:"icon"`
	Text        string   `json:"text"`
	ImageURL    ImageRef `json:"imageUrl,omitempty"`
	ImageAIHint string   `json:"imageAiHint,omitempty"`
}

// FloorPlans holds the floor plan list and the contact and legal blocks.
type FloorPlans struct {
	FloorPlanHeading          string          `json:"floorPlanHeading"`
	FloorPlans                []FloorPlanItem `json:"floorPlans"`
	ContactInfoHeading        string          `json:"contactInfoHeading"`
	ContactSalesOfficeTitle   string          `json:"contactSalesOfficeTitle"`
	ContactSalesOfficePhone   string          `json:"contactSalesOfficePhone"`
	ContactSalesOfficeEmail   string          `json:"contactSalesOfficeEmail"`
	ContactSalesOfficeWebsite string          `json:"contactSalesOfficeWebsite"`
	ContactSiteOfficeTitle    string          `json:"contactSiteOfficeTitle"`
	ContactSiteOfficeAddress  string          `json:"contactSiteOfficeAddress"`
	ContactSiteOfficeHours    string          `json:"contactSiteOfficeHours"`
	LegalInfoHeading          string          `json:"legalInfoHeading"`
	LegalReraNo               string          `json:"legalReraNo"`
	LegalReraLinkText         string          `json:"legalReraLinkText"`
	LegalDisclosure           string          `json:"legalDisclosure,omitempty"`
}

// FloorPlanItem describes one unit type: its plan image, specifications and features.
type FloorPlanItem struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	FloorPlanImage       ImageRef `json:"floorPlanImage,omitempty"`
	FloorPlanImageAIHint string   `json:"floorPlanImageAiHint,omitempty"`
	SpecsHeading         string   `json:"specsHeading"`
	SpecsCarpetArea      string   `json:"specsCarpetArea"`
	SpecsBuiltUpArea     string   `json:"specsBuiltUpArea"`
	SpecsBalconyArea     string   `json:"specsBalconyArea"`
	SpecsConfiguration   string   `json:"specsConfiguration"`
	SpecsFeaturesTitle   string   `json:"specsFeaturesTitle"`
	SpecsFeaturesItems   []string `json:"specsFeaturesItems"`
}

// Clone returns a deep copy of b. Slices of the copy share no backing
// arrays with b, and nil lists come back as empty, non-nil slices.
func (b Brochure) Clone() Brochure {
	out := b
	out.Page2.ConnectivityMetroRailwayItems = cloneStrings(b.Page2.ConnectivityMetroRailwayItems)
	out.Page2.ConnectivityMajorRoadsItems = cloneStrings(b.Page2.ConnectivityMajorRoadsItems)
	out.Page2.ConnectivityHealthcareItems = cloneStrings(b.Page2.ConnectivityHealthcareItems)
	out.Page2.ConnectivityEducationItems = cloneStrings(b.Page2.ConnectivityEducationItems)

	out.Page3.Amenities = make([]AmenityItem, len(b.Page3.Amenities))
	copy(out.Page3.Amenities, b.Page3.Amenities)

	out.Page4.FloorPlans = make([]FloorPlanItem, len(b.Page4.FloorPlans))
	for i, fp := range b.Page4.FloorPlans {
		fp.SpecsFeaturesItems = cloneStrings(fp.SpecsFeaturesItems)
		out.Page4.FloorPlans[i] = fp
	}
	return out
}

// HasMasterPlan reports whether the master plan block has anything to show.
func (a Amenities) HasMasterPlan() bool {
	return !isBlank(a.MasterPlanHeading) || !isBlank(string(a.MasterPlanImage))
}

// HasContact reports whether the contact or legal block has a heading.
func (f FloorPlans) HasContact() bool {
	return !isBlank(f.ContactInfoHeading) || !isBlank(f.LegalInfoHeading)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
