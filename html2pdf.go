package brochure

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-brochure/internal/fileutil"
	"github.com/alnah/go-brochure/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfConverter = (*fileConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds the sheet size for PDF generation, in inches.
type pdfOptions struct {
	PaperWidth  float64
	PaperHeight float64
}

// a4Options prints borderless A4 sheets.
func a4Options() *pdfOptions {
	return &pdfOptions{PaperWidth: a4WidthInches, PaperHeight: a4HeightInches}
}

// resolveBrowserBin returns bin, or ROD_BROWSER_BIN when bin is empty.
func resolveBrowserBin(bin string) string {
	if bin != "" {
		return bin
	}
	return os.Getenv("ROD_BROWSER_BIN")
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if no browser binary is configured.
// The browser is shared: pages are opened per call, so concurrent renders
// are safe once the browser is up.
type rodRenderer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	bin      string
	logger   *zap.Logger
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration, bin string, logger *zap.Logger) *rodRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rodRenderer{timeout: timeout, bin: bin, logger: logger}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	bin := resolveBrowserBin(r.bin)
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.logger.Debug("browser launched", zap.Int("pid", l.PID()), zap.String("bin", bin))
	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Close releases browser resources and reaps the browser's process tree.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		process.TerminateTree(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions maps opts to a borderless print request. The stylesheet's
// @page size wins over the paper size when both are present.
func buildPrintOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	if opts == nil {
		opts = a4Options()
	}
	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(opts.PaperWidth),
		PaperHeight:       floatPtr(opts.PaperHeight),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// fileConverter writes the document to a temp file and hands it to a renderer.
type fileConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a fileConverter backed by go-rod.
func newRodConverter(timeout time.Duration, bin string, logger *zap.Logger) *fileConverter {
	return &fileConverter{
		renderer: newRodRenderer(timeout, bin, logger),
	}
}

// ToPDF converts an HTML document to PDF bytes using headless Chrome.
func (c *fileConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *fileConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
