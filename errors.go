package brochure

import (
	"errors"

	"github.com/alnah/go-brochure/internal/render"
)

// Sentinel errors for library operations.
var (
	ErrEmptyFragment  = errors.New("HTML content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPoolClosed     = errors.New("converter pool closed")

	// Configuration errors.
	ErrInvalidBackend   = errors.New("invalid PDF backend")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// ErrInvalidViewMode is returned for view modes other than portrait and landscape.
var ErrInvalidViewMode = render.ErrInvalidViewMode
