package brochure

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFilename is used when a title yields no usable characters.
const DefaultFilename = "brochure.pdf"

// maxFilenameStem bounds the slug part of generated filenames.
const maxFilenameStem = 80

// ExportFilename derives a download filename from a brochure title:
// accents are folded, anything outside [a-z0-9] becomes a single hyphen.
// "Grand Vista Résidences" yields "grand-vista-residences.pdf".
func ExportFilename(title string) string {
	stem := slugify(title)
	if stem == "" {
		return DefaultFilename
	}
	return stem + ".pdf"
}

func slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	stem := b.String()
	if len(stem) > maxFilenameStem {
		stem = strings.TrimRight(stem[:maxFilenameStem], "-")
	}
	return stem
}
