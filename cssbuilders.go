package brochure

import (
	"fmt"
	"strings"
)

// A4 sheet in inches, the unit the DevTools print API takes.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// On-screen scale of the preview, per view mode.
const (
	portraitPreviewScale  = 0.8
	landscapePreviewScale = 0.65
)

// exportCSS prints one .page per A4 sheet. Spreads are a viewing aid only,
// so their wrappers collapse and each half becomes its own sheet.
const exportCSS = `
/* Export */
@page {
  size: A4;
  margin: 0;
}
html, body {
  margin: 0;
  padding: 0;
  background: #fff;
}
* {
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
.brochure {
  display: block;
  gap: 0;
  padding: 0;
  transform: none;
}
.spread {
  display: contents;
}
.page {
  margin: 0;
  box-shadow: none;
  break-after: page;
  page-break-after: always;
  break-inside: avoid;
}
.page:last-child,
.spread:last-child .page:last-child {
  break-after: auto;
  page-break-after: auto;
}
[data-print-exclude] {
  display: none !important;
}
`

// buildExportCSS returns the print overrides appended to the base style.
func buildExportCSS() string {
	return exportCSS
}

// buildPreviewCSS returns the on-screen overrides for mode: a neutral
// backdrop and a scaled brochure. Portrait scales from the top center,
// landscape from the top left so wide spreads scroll horizontally.
func buildPreviewCSS(mode ViewMode) string {
	scale := portraitPreviewScale
	origin := "top center"
	direction := "column"
	align := "center"
	if mode == Landscape {
		scale = landscapePreviewScale
		origin = "top left"
		direction = "row"
		align = "flex-start"
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, `
/* Preview (%s) */
body {
  background: #e5e7eb;
  margin: 0;
}
.preview-area {
  display: flex;
  flex-direction: %s;
  align-items: %s;
  padding: 2rem;
  overflow: auto;
}
.preview-area > .brochure {
  display: inline-flex;
  transform: scale(%.2f);
  transform-origin: %s;
}
`, mode, direction, align, scale, origin)
	return buf.String()
}
