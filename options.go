package brochure

import (
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-brochure/internal/assets"
	"github.com/alnah/go-brochure/internal/imageutil"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout          time.Duration
	styleInput       string // name, file path, or CSS content
	resolvedStyle    string // CSS content after resolution
	assetPath        string
	templateSetName  string
	templateSet      *assets.TemplateSet
	backend          Backend
	browserBin       string
	placeholderHosts []string
	disclaimer       string
	imageOptions     imageutil.Options
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("brochure: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the base stylesheet. The input is resolved as:
//   - a file path if it contains / or \
//   - CSS content if it contains {
//   - otherwise a style name looked up through the asset loader
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets. Assets missing there fall back to the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTemplateSetName selects a template set by name. Empty keeps the default.
func WithTemplateSetName(name string) Option {
	return func(c *Converter) {
		if name != "" {
			c.cfg.templateSetName = name
		}
	}
}

// WithTemplateSet uses ts instead of loading one by name.
func WithTemplateSet(ts *assets.TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithBackend selects the headless browser driver used for PDF export.
func WithBackend(b Backend) Option {
	return func(c *Converter) {
		c.cfg.backend = b
	}
}

// WithBrowserBin points the PDF backend at a pre-installed Chrome or Chromium.
func WithBrowserBin(path string) Option {
	return func(c *Converter) {
		c.cfg.browserBin = path
	}
}

// WithPlaceholderHosts overrides the hosts whose images count as placeholders.
func WithPlaceholderHosts(hosts []string) Option {
	return func(c *Converter) {
		c.cfg.placeholderHosts = hosts
	}
}

// WithDisclaimer overrides the footer disclaimer printed on the last page.
func WithDisclaimer(text string) Option {
	return func(c *Converter) {
		c.cfg.disclaimer = text
	}
}

// WithImageOptions sets how local images are resized when embedded.
func WithImageOptions(opts imageutil.Options) Option {
	return func(c *Converter) {
		c.cfg.imageOptions = opts
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}
