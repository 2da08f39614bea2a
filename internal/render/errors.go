package render

import "errors"

// Sentinel errors for page rendering.
var (
	ErrPageRender      = errors.New("page rendering failed")
	ErrTemplateParse   = errors.New("page template parsing failed")
	ErrInvalidViewMode = errors.New("invalid view mode")
	ErrUnknownPageKind = errors.New("unknown page kind")
)
