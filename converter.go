package brochure

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/assets"
	"github.com/alnah/go-brochure/internal/fileutil"
	"github.com/alnah/go-brochure/internal/imageutil"
	"github.com/alnah/go-brochure/internal/layout"
	"github.com/alnah/go-brochure/internal/pipeline"
	"github.com/alnah/go-brochure/internal/render"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)
	_ pdfConverter         = (*fileConverter)(nil)
)

// Converter plans, renders, previews and exports brochures.
// Create with NewConverter and Close when done. A Converter is safe for
// concurrent use; identical exports running at the same time share one render.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	renderer     *render.Renderer
	cssInjector  pipeline.CSSInjector
	sanitizer    *pipeline.Sanitizer
	pdfConverter pdfConverter
	logger       *zap.Logger
	exports      singleflight.Group
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithBackend).
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:         defaultTimeout,
			templateSetName: assets.DefaultTemplateSetName,
			backend:         BackendRod,
			imageOptions:    imageutil.DefaultOptions(),
		},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
		sanitizer:   pipeline.NewSanitizer(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	templateSet := c.cfg.templateSet
	if templateSet == nil {
		var err error
		templateSet, err = c.assetLoader.LoadTemplateSet(c.cfg.templateSetName)
		if err != nil {
			return nil, fmt.Errorf("loading template set %q: %w", c.cfg.templateSetName, err)
		}
	}

	renderer, err := render.NewRenderer(templateSet,
		render.WithPlaceholderHosts(c.cfg.placeholderHosts),
		render.WithDisclaimer(c.cfg.disclaimer),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}
	c.renderer = renderer

	// Tests inject a fake converter before this point.
	if c.pdfConverter == nil {
		switch c.cfg.backend {
		case BackendRod, "":
			c.pdfConverter = newRodConverter(c.cfg.timeout, c.cfg.browserBin, c.logger)
		case BackendChromedp:
			c.pdfConverter = newChromedpConverter(c.cfg.timeout, c.cfg.browserBin)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidBackend, c.cfg.backend)
		}
	}

	return c, nil
}

// Plan returns the page sequence for b.
func (c *Converter) Plan(b content.Brochure) []PageDescriptor {
	return Plan(b)
}

// Render returns the brochure container markup for b in mode.
func (c *Converter) Render(ctx context.Context, b content.Brochure, mode ViewMode) (string, error) {
	return c.renderer.RenderDocument(ctx, layout.Plan(b), b, mode)
}

// Preview returns a standalone HTML document showing b the way the editor
// does: pages scaled down, stacked or in spreads.
func (c *Converter) Preview(ctx context.Context, b content.Brochure, mode ViewMode) (string, error) {
	if mode == "" {
		mode = Portrait
	}
	fragment, err := c.Render(ctx, b, mode)
	if err != nil {
		return "", err
	}

	doc := pipeline.WrapDocument(documentTitle("", b), `<main class="preview-area">`+fragment+`</main>`)
	return c.cssInjector.InjectCSS(ctx, doc, c.cfg.resolvedStyle+buildPreviewCSS(mode)), nil
}

// Export renders b and prints it to PDF.
func (c *Converter) Export(ctx context.Context, b content.Brochure, opts ExportOptions) (*ExportResult, error) {
	fragment, err := c.Render(ctx, b, opts.Mode)
	if err != nil {
		return nil, err
	}
	opts.Title = documentTitle(opts.Title, b)
	return c.ExportHTML(ctx, fragment, opts)
}

// ExportHTML prints an already rendered brochure fragment to PDF. Nodes
// marked data-print-exclude are dropped first. A call matching one already
// in flight waits for it and receives the same result.
func (c *Converter) ExportHTML(ctx context.Context, fragment string, opts ExportOptions) (*ExportResult, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, ErrEmptyFragment
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The shared print outlives any single caller: it is detached from the
	// first caller's cancellation and bounded by the export timeout instead.
	key := exportKey(fragment, opts)
	ch := c.exports.DoChan(key, func() (any, error) {
		printCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.timeout)
		defer cancel()
		return c.export(printCtx, fragment, opts)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Shared {
			c.logger.Debug("export coalesced", zap.String("key", key[:12]))
		}
		if r.Err != nil {
			return nil, r.Err
		}
		res := *r.Val.(*ExportResult)
		return &res, nil
	}
}

// export runs the print pipeline.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) export(ctx context.Context, fragment string, opts ExportOptions) (result *ExportResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if opts.Sanitize {
		fragment = c.sanitizer.Sanitize(fragment)
	}

	fragment, err = pipeline.StripPrintExcluded(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("stripping print-excluded nodes: %w", err)
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Brochure"
	}
	htmlContent := pipeline.WrapDocument(title, fragment)
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.cfg.resolvedStyle+buildExportCSS())
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, a4Options())
	if err != nil {
		c.logger.Warn("pdf export failed", zap.Error(err))
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	c.logger.Debug("pdf exported", zap.Int("bytes", len(pdfBytes)), zap.String("title", title))
	return &ExportResult{
		PDF:         pdfBytes,
		HTML:        []byte(htmlContent),
		Filename:    ExportFilename(opts.Title),
		ContentType: ContentTypePDF,
	}, nil
}

// EmbedLocalImages inlines image fields of b that hold paths relative to
// sourceDir as optimized data URIs.
func (c *Converter) EmbedLocalImages(ctx context.Context, b content.Brochure, sourceDir string) (content.Brochure, error) {
	return pipeline.ResolveLocalImages(ctx, b, sourceDir, c.cfg.imageOptions)
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewConverter after options are applied and asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		css, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(css)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// documentTitle picks title, then the brochure's own title.
func documentTitle(title string, b content.Brochure) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return strings.TrimSpace(b.Meta.BrochureTitle)
}

func exportKey(fragment string, opts ExportOptions) string {
	h := sha256.New()
	h.Write([]byte(opts.Title))
	if opts.Sanitize {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte(fragment))
	return hex.EncodeToString(h.Sum(nil))
}
