package content

import (
	"fmt"
	"net/url"
	"strings"
)

// ImageRef references an image: an embedded data URI, a linked http(s) URL,
// or a placeholder-service URL standing in for an image not supplied yet.
type ImageRef string

// ImageKind classifies an ImageRef.
type ImageKind int

const (
	ImageAbsent ImageKind = iota
	ImagePlaceholder
	ImageEmbedded
	ImageLinked
)

func (k ImageKind) String() string {
	switch k {
	case ImagePlaceholder:
		return "placeholder"
	case ImageEmbedded:
		return "embedded"
	case ImageLinked:
		return "linked"
	default:
		return "absent"
	}
}

// PlaceholderHosts lists the image services recognized as placeholder sentinels.
// Subdomains of these hosts match too.
var PlaceholderHosts = []string{
	"placehold.co",
	"placehold.it",
	"placeholder.com",
	"via.placeholder.com",
	"dummyimage.com",
	"picsum.photos",
}

// PlaceholderURL is the sentinel assigned to image slots of newly added items.
const PlaceholderURL ImageRef = "https://placehold.co/350x300.png"

const dataImagePrefix = "data:image/"

// Kind classifies the reference.
func (r ImageRef) Kind() ImageKind {
	return ClassifyImage(string(r), PlaceholderHosts)
}

// IsReal reports whether the reference points at an actual image.
func (r ImageRef) IsReal() bool {
	k := r.Kind()
	return k == ImageEmbedded || k == ImageLinked
}

// IsEmbedded reports whether the reference is a base64 data URI.
func (r ImageRef) IsEmbedded() bool {
	return r.Kind() == ImageEmbedded
}

// ClassifyImage classifies ref against the given placeholder hosts.
func ClassifyImage(ref string, placeholderHosts []string) ImageKind {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ImageAbsent
	}
	if len(ref) > len(dataImagePrefix) && strings.EqualFold(ref[:len(dataImagePrefix)], dataImagePrefix) {
		if strings.Contains(ref, ",") {
			return ImageEmbedded
		}
		return ImageAbsent
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return ImageAbsent
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return ImageAbsent
	}

	host := strings.ToLower(u.Hostname())
	for _, h := range placeholderHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return ImagePlaceholder
		}
	}
	return ImageLinked
}

// MapImages returns a copy of b with fn applied to every image reference,
// including amenity and floor plan images. The first error aborts the walk.
func (b Brochure) MapImages(fn func(ImageRef) (ImageRef, error)) (Brochure, error) {
	out := b.Clone()
	for _, path := range sortedKeys(imageFields) {
		p := (*ImageRef)(scalarFields[path](&out))
		ref, err := fn(*p)
		if err != nil {
			return b, fmt.Errorf("%s: %w", path, err)
		}
		*p = ref
	}
	for i := range out.Page3.Amenities {
		ref, err := fn(out.Page3.Amenities[i].ImageURL)
		if err != nil {
			return b, fmt.Errorf("page3.amenities[%d].imageUrl: %w", i, err)
		}
		out.Page3.Amenities[i].ImageURL = ref
	}
	for i := range out.Page4.FloorPlans {
		ref, err := fn(out.Page4.FloorPlans[i].FloorPlanImage)
		if err != nil {
			return b, fmt.Errorf("page4.floorPlans[%d].floorPlanImage: %w", i, err)
		}
		out.Page4.FloorPlans[i].FloorPlanImage = ref
	}
	return out, nil
}
