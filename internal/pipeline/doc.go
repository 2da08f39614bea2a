// Package pipeline prepares rendered brochure markup for print.
//
// The stages run in order on one HTML string:
//   - sanitizing of fragments received from untrusted callers
//   - removal of editor-only nodes marked data-print-exclude
//   - wrapping of a fragment into a standalone HTML document
//   - CSS injection of the page stylesheet and print overrides
//
// Local image files referenced by content loaded from disk are embedded as
// data URIs before rendering, so the document never depends on the
// filesystem. PDF generation itself lives in the root brochure package.
package pipeline
