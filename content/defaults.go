package content

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID returns a fresh, sortable, globally unique item identifier.
func NewID() string {
	return ulid.Make().String()
}

// Default returns the sample brochure used for new sessions and resets.
// Item IDs are freshly generated on every call.
func Default() Brochure {
	return Brochure{
		Meta: Meta{BrochureTitle: "Brochure Forge - Sample Project"},
		Page1: Cover{
			BuilderLogoImage:       "https://placehold.co/150x60.png",
			BuilderLogoImageAIHint: "modern construction logo",
			LogoTextLine1:          "Prime Properties Inc.",
			LogoTextLine2:          "Crafting Your Future Spaces",
			Tagline:                "Excellence in Every Brick",
			MainTitle:              "The Grand Vista Condominiums",
			SubTitle:               "Experience Unmatched Urban Elegance",
			BuildingImage:          "https://placehold.co/450x280.png",
			BuildingImageAIHint:    "luxury apartment exterior",
			IntroHeading:           "Introducing The Grand Vista",
			IntroPara1: "Welcome to The Grand Vista, a beacon of modern architecture and luxurious living. " +
				"Situated in the city's most sought-after district, The Grand Vista offers a unique blend of " +
				"sophisticated design, state-of-the-art amenities, and breathtaking views. " +
				"This is more than a home; it's a lifestyle statement.",
			IntroPara2: "Our vision was to create an urban sanctuary that caters to every need of its discerning residents. " +
				"From meticulously designed interiors to expansive green spaces, every aspect of The Grand Vista " +
				"has been thoughtfully curated to provide an unparalleled living experience. Prepare to be captivated.",
			DeveloperHeading: "About Prime Properties Inc.",
			DeveloperPara: "Prime Properties Inc. has been a leader in real estate development for over 30 years, " +
				"delivering iconic projects that redefine urban landscapes. Our commitment to quality, innovation, " +
				"and customer satisfaction is unwavering, making us a trusted name in the industry.",
		},
		Page2: Location{
			SiteAddressHeading: "Unbeatable Location & Connectivity",
			SiteAddress: "123 Vista Avenue, Downtown Metropolis,\nSkyline City, ST 98765\n" +
				"Landmark: Adjacent to Central Park & Financial District",
			LocationMapImage:              "https://placehold.co/600x250.png",
			LocationMapImageAIHint:        "detailed city map",
			ConnectivityHeading:           "Seamlessly Connected to Everything",
			ConnectivityMetroRailwayTitle: "🚉 Transit Hubs Nearby",
			ConnectivityMetroRailwayItems: []string{
				"City Central Metro - 5 min walk (500m)",
				"Downtown Express Line - 10 min walk (1km)",
				"Main Intercity Railway Terminal - 15 min drive (7km)",
				"International Airport - 30 min drive (25km)",
			},
			ConnectivityMajorRoadsTitle: "🛣️ Easy Road Access",
			ConnectivityMajorRoadsItems: []string{
				"Main Street Expressway - 2 min drive",
				"Cross-City Tunnel - 5 min drive",
				"Coastal Highway Link - 10 min drive",
			},
			ConnectivityHealthcareTitle: "🏥 Premier Healthcare",
			ConnectivityHealthcareItems: []string{
				"City General Hospital - 5 min drive",
				"Specialty Clinics Complex - 7 min drive",
				"24/7 Pharmacy - 2 min walk",
			},
			ConnectivityEducationTitle: "🎓 Top Educational Institutions",
			ConnectivityEducationItems: []string{
				"Metropolis International School - 10 min drive",
				"Downtown University - 15 min drive",
				"City Public Library - 5 min walk",
			},
		},
		Page3: Amenities{
			AmenitiesHeading: "Lifestyle Amenities at Your Doorstep",
			Amenities: []AmenityItem{
				defaultAmenity("🏊", "Olympic Size Pool", "swimming pool luxury"),
				defaultAmenity("🏋️", "State-of-the-Art Fitness Center", "modern gym"),
				defaultAmenity("🌳", "Serene Zen Garden & Yoga Deck", "peaceful garden"),
				defaultAmenity("🧒", "Adventure Kids Play Zone", "children playground"),
				defaultAmenity("🎉", "Elegant Clubhouse & Party Hall", "event clubhouse"),
				defaultAmenity("🚗", "Secure Multi-Level Parking", "underground parking"),
				defaultAmenity("🎬", "Private Mini Theatre & Lounge", "cinema room"),
				defaultAmenity("📚", "Residents Library & Co-working Space", "modern library"),
			},
			MasterPlanHeading:     "Intelligently Designed Master Plan",
			MasterPlanImage:       "https://placehold.co/600x350.png",
			MasterPlanImageAIHint: "architectural site plan",
		},
		Page4: FloorPlans{
			FloorPlanHeading: "Explore Our Exquisite Floor Plans",
			FloorPlans: []FloorPlanItem{
				{
					ID:                   NewID(),
					Name:                 "The Skyline Suite - 3BHK Penthouse",
					FloorPlanImage:       "https://placehold.co/350x300.png",
					FloorPlanImageAIHint: "luxury penthouse floorplan",
					SpecsHeading:         "Penthouse Specifications Overview",
					SpecsCarpetArea:      "2200 sq. ft.",
					SpecsBuiltUpArea:     "2800 sq. ft.",
					SpecsBalconyArea:     "450 sq. ft. Wrap-around Terrace",
					SpecsConfiguration: "3 Bedrooms, 3 Ensuite Bathrooms, Powder Room, Grand Living, Dining, " +
						"Study, Gourmet Kitchen, Utility, Servant Quarters",
					SpecsFeaturesTitle: "Exclusive Penthouse Amenities:",
					SpecsFeaturesItems: []string{
						"Imported Italian Marble Flooring",
						"Fully Automated Smart Home System",
						"Designer Kitchen with European Appliances",
						"Private Elevator Access to Penthouse",
						"Master Bath with Jacuzzi & Rain Shower",
						"Expansive Walk-in Closets in All Bedrooms",
						"Floor-to-ceiling Panoramic Windows with UV Protection",
					},
				},
				{
					ID:                   NewID(),
					Name:                 "The Garden Villa - 2BHK Duplex",
					FloorPlanImage:       "https://placehold.co/350x300.png",
					FloorPlanImageAIHint: "modern duplex floorplan",
					SpecsHeading:         "Duplex Unit Specifications",
					SpecsCarpetArea:      "1500 sq. ft.",
					SpecsBuiltUpArea:     "1850 sq. ft.",
					SpecsBalconyArea:     "200 sq. ft. Private Garden Terrace",
					SpecsConfiguration: "2 Bedrooms, 2.5 Bathrooms, Double-height Living Area, Dining, " +
						"Modern Kitchen, Private Garden Space",
					SpecsFeaturesTitle: "Duplex Special Features:",
					SpecsFeaturesItems: []string{
						"Engineered Hardwood Flooring in Bedrooms",
						"Contemporary Kitchen with Quartz Countertops",
						"Spacious Outdoor Patio for Relaxation",
						"Dedicated Study Nook / Home Office Space",
						"Ample Natural Light and Ventilation",
					},
				},
			},
			ContactInfoHeading:        "Connect With Us Today",
			ContactSalesOfficeTitle:   "📞 Sales & Enquiries",
			ContactSalesOfficePhone:   "+1 (800) 555-0199",
			ContactSalesOfficeEmail:   "sales@grandvista.example.com",
			ContactSalesOfficeWebsite: "www.grandvista.example.com",
			ContactSiteOfficeTitle:    "🏢 Project Site Office",
			ContactSiteOfficeAddress:  "The Grand Vista Site, 123 Vista Avenue,\nDowntown Metropolis, Skyline City",
			ContactSiteOfficeHours:    "Open Daily: 10:00 AM - 07:00 PM (By Appointment)",
			LegalInfoHeading:          "Legal Disclosures & Information",
			LegalReraNo:               "RERA REG. NO.: PRJ/ST/CY/12345/2025",
			LegalReraLinkText:         "Verify on State RERA Portal: state.rera.gov.example",
		},
	}
}

func defaultAmenity(icon, text, hint string) AmenityItem {
	return AmenityItem{
		ID:          NewID(),
		Icon:        icon,
		Text:        text,
		ImageURL:    "https://placehold.co/70x70.png",
		ImageAIHint: hint,
	}
}

// newAmenity is the placeholder content appended by AddAmenity.
func newAmenity() AmenityItem {
	return AmenityItem{
		ID:          NewID(),
		Icon:        "✨",
		Text:        "New Amenity",
		ImageURL:    "https://placehold.co/70x70.png",
		ImageAIHint: "amenity photo",
	}
}

// newFloorPlan is the placeholder content appended by AddFloorPlan.
func newFloorPlan() FloorPlanItem {
	return FloorPlanItem{
		ID:                   NewID(),
		Name:                 "New Floor Plan",
		FloorPlanImage:       PlaceholderURL,
		FloorPlanImageAIHint: "apartment floorplan",
		SpecsHeading:         "Specifications",
		SpecsCarpetArea:      "",
		SpecsBuiltUpArea:     "",
		SpecsBalconyArea:     "",
		SpecsConfiguration:   "",
		SpecsFeaturesTitle:   "Features:",
		SpecsFeaturesItems:   []string{},
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
