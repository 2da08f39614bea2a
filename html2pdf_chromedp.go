package brochure

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/alnah/go-brochure/internal/fileutil"
)

var _ pdfRenderer = (*chromedpRenderer)(nil)

// chromePaths are probed when no browser binary is configured.
var chromePaths = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// detectChromePath returns bin, CHROME_PATH, or the first existing well-known
// path. Empty lets chromedp search on its own.
func detectChromePath(bin string) string {
	if bin != "" {
		return bin
	}
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, p := range chromePaths {
		if fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}

// chromedpRenderer implements pdfRenderer with chromedp. Each call starts
// its own browser, which exits when the call's allocator context ends.
type chromedpRenderer struct {
	timeout  time.Duration
	execPath string
}

func newChromedpRenderer(timeout time.Duration, bin string) *chromedpRenderer {
	return &chromedpRenderer{timeout: timeout, execPath: detectChromePath(bin)}
}

// RenderFromFile navigates to filePath and prints it.
func (r *chromedpRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = a4Options()
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	// Starting the browser with an empty task list separates launch
	// failures from page failures.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+filePath),
		chromedp.WaitReady("body"),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	var pdfBuf []byte
	err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfBuf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPreferCSSPageSize(true).
			WithPaperWidth(opts.PaperWidth).
			WithPaperHeight(opts.PaperHeight).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// Close is a no-op: browsers live only as long as one render.
func (r *chromedpRenderer) Close() error {
	return nil
}

// newChromedpConverter creates a converter printing through chromedp. It
// shares the temp-file flow of the rod backend.
func newChromedpConverter(timeout time.Duration, bin string) *fileConverter {
	return &fileConverter{renderer: newChromedpRenderer(timeout, bin)}
}
