package brochure

// Notes:
// - Converter tests use a mock pdfConverter, so no browser is started
// - The real embedded template set and stylesheet are used for rendering
// - Coalescing runs inside a synctest bubble to observe in-flight joins

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/assets"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	mu      sync.Mutex
	calls   int
	input   string
	opts    *pdfOptions
	output  []byte
	err     error
	closed  bool
	release chan struct{} // when set, ToPDF blocks until closed
	panics  bool
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	if m.panics {
		panic("printer on fire")
	}
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.input = htmlContent
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

func (m *mockPDFConverter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func withPDFConverter(c pdfConverter) Option {
	return func(conv *Converter) {
		conv.pdfConverter = c
	}
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// NewConverter
// ---------------------------------------------------------------------------

func TestNewConverter_Defaults(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, withPDFConverter(&mockPDFConverter{}))

	if conv.cfg.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", conv.cfg.timeout, defaultTimeout)
	}
	if conv.cfg.backend != BackendRod {
		t.Errorf("backend = %q, want %q", conv.cfg.backend, BackendRod)
	}
	if !strings.Contains(conv.cfg.resolvedStyle, ".page") {
		t.Error("default style should be resolved")
	}
}

func TestNewConverter_Backends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend Backend
		wantErr error
	}{
		{name: "rod", backend: BackendRod},
		{name: "chromedp", backend: BackendChromedp},
		{name: "unknown", backend: "wkhtmltopdf", wantErr: ErrInvalidBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(WithBackend(tt.backend))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			// No browser is started before the first export.
			if err := conv.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
	}
}

func TestNewConverter_Style(t *testing.T) {
	t.Parallel()

	t.Run("inline CSS", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, WithStyle(".page{color:red}"), withPDFConverter(&mockPDFConverter{}))
		if conv.cfg.resolvedStyle != ".page{color:red}" {
			t.Errorf("resolvedStyle = %q", conv.cfg.resolvedStyle)
		}
	})

	t.Run("missing style name", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithStyle("nonexistent"), withPDFConverter(&mockPDFConverter{}))
		if !errors.Is(err, assets.ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("missing style file", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithStyle(t.TempDir()+"/missing.css"), withPDFConverter(&mockPDFConverter{}))
		if err == nil {
			t.Error("expected error for missing style file")
		}
	})
}

func TestNewConverter_InvalidAssetPath(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithAssetPath(t.TempDir()+"/missing"), withPDFConverter(&mockPDFConverter{}))
	if !errors.Is(err, ErrInvalidAssetPath) {
		t.Errorf("error = %v, want ErrInvalidAssetPath", err)
	}
}

func TestNewConverter_TemplateSet(t *testing.T) {
	t.Parallel()

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithTemplateSetName("ghost"), withPDFConverter(&mockPDFConverter{}))
		if !errors.Is(err, assets.ErrTemplateSetNotFound) {
			t.Errorf("error = %v, want ErrTemplateSetNotFound", err)
		}
	})

	t.Run("incomplete set", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithTemplateSet(&assets.TemplateSet{Name: "half", Cover: "x"}), withPDFConverter(&mockPDFConverter{}))
		if !errors.Is(err, assets.ErrIncompleteTemplateSet) {
			t.Errorf("error = %v, want ErrIncompleteTemplateSet", err)
		}
	})
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero timeout")
		}
	}()
	WithTimeout(0)
}

// ---------------------------------------------------------------------------
// Plan / Render / Preview
// ---------------------------------------------------------------------------

func TestConverter_Plan(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, withPDFConverter(&mockPDFConverter{}))
	b := content.Default()

	pages := conv.Plan(b)

	wantKinds := []string{"cover", "location", "amenities", "amenities-overflow", "floor-plan-group"}
	if len(pages) != len(wantKinds) {
		t.Fatalf("got %d pages, want %d", len(pages), len(wantKinds))
	}
	for i, p := range pages {
		if p.Kind != wantKinds[i] {
			t.Errorf("page %d kind = %q, want %q", i+1, p.Kind, wantKinds[i])
		}
		if p.Number != i+1 {
			t.Errorf("page %d number = %d", i+1, p.Number)
		}
	}

	if len(pages[2].AmenityIDs) != 8 || pages[2].AmenityIDs[0] != b.Page3.Amenities[0].ID {
		t.Errorf("amenities page ids = %v", pages[2].AmenityIDs)
	}
	if !pages[3].ShowMasterPlan {
		t.Error("overflow page should carry the master plan")
	}
	last := pages[len(pages)-1]
	if !last.ShowContact || !last.ShowDisclaimer || !last.IsLastGroup {
		t.Errorf("last page = %+v, want contact, disclaimer and last group", last)
	}
}

func TestConverter_Render(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, withPDFConverter(&mockPDFConverter{}))
	ctx := context.Background()

	t.Run("portrait", func(t *testing.T) {
		t.Parallel()

		html, err := conv.Render(ctx, content.Default(), Portrait)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		doc := parseHTML(t, html)
		if got := doc.Find("section.page").Length(); got != 5 {
			t.Errorf("got %d pages, want 5", got)
		}
		if doc.Find(".spread").Length() != 0 {
			t.Error("portrait mode should not compose spreads")
		}
	})

	t.Run("landscape", func(t *testing.T) {
		t.Parallel()

		html, err := conv.Render(ctx, content.Default(), Landscape)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		doc := parseHTML(t, html)
		if got := doc.Find(".spread").Length(); got != 3 {
			t.Errorf("got %d spreads, want 3", got)
		}
		if doc.Find(".page--blank").Length() != 1 {
			t.Error("odd page count should add one blank page")
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		t.Parallel()

		_, err := conv.Render(ctx, content.Default(), "sideways")
		if !errors.Is(err, ErrInvalidViewMode) {
			t.Errorf("error = %v, want ErrInvalidViewMode", err)
		}
	})
}

func TestConverter_Preview(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, withPDFConverter(&mockPDFConverter{}))

	tests := []struct {
		mode      ViewMode
		wantScale string
	}{
		{mode: Portrait, wantScale: "scale(0.80)"},
		{mode: Landscape, wantScale: "scale(0.65)"},
		{mode: "", wantScale: "scale(0.80)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()

			html, err := conv.Preview(context.Background(), content.Default(), tt.mode)
			if err != nil {
				t.Fatalf("Preview() error = %v", err)
			}
			if !strings.HasPrefix(html, "<!DOCTYPE html>") {
				t.Error("preview should be a full document")
			}
			if !strings.Contains(html, tt.wantScale) {
				t.Errorf("preview missing %q", tt.wantScale)
			}
			doc := parseHTML(t, html)
			if doc.Find("title").Text() != "Brochure Forge - Sample Project" {
				t.Errorf("title = %q", doc.Find("title").Text())
			}
			if doc.Find("main.preview-area #brochure-container").Length() != 1 {
				t.Error("brochure container should sit in the preview area")
			}
			// Placeholders remain visible while editing.
			if doc.Find("[data-print-exclude]").Length() == 0 {
				t.Error("preview should keep print-excluded placeholders")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

func TestConverter_Export(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{output: []byte("%PDF-1.7 brochure")}
	conv := newTestConverter(t, withPDFConverter(mock))

	res, err := conv.Export(context.Background(), content.Default(), ExportOptions{Mode: Landscape})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if string(res.PDF) != "%PDF-1.7 brochure" {
		t.Errorf("PDF = %q", res.PDF)
	}
	if res.Filename != "brochure-forge-sample-project.pdf" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if res.ContentType != ContentTypePDF {
		t.Errorf("ContentType = %q", res.ContentType)
	}
	if mock.opts == nil || mock.opts.PaperWidth != a4WidthInches || mock.opts.PaperHeight != a4HeightInches {
		t.Errorf("pdf options = %+v, want A4", mock.opts)
	}

	doc := parseHTML(t, mock.input)
	if got := doc.Find("[data-print-exclude]").Length(); got != 0 {
		t.Errorf("%d print-excluded nodes reached the printer", got)
	}
	if got := doc.Find("section.page").Length(); got != 5 {
		t.Errorf("printed %d pages, want 5", got)
	}
	if !strings.Contains(mock.input, "size: A4") {
		t.Error("export CSS missing @page size")
	}
	if string(res.HTML) != mock.input {
		t.Error("result HTML should be the printed document")
	}
}

func TestConverter_ExportHTML(t *testing.T) {
	t.Parallel()

	fragment := `<div id="brochure-container"><section class="page">` +
		`<div class="image-empty" data-print-exclude="true">Add image</div>` +
		`<p>Keep me</p><script>alert(1)</script></section></div>`

	tests := []struct {
		name         string
		opts         ExportOptions
		wantScript   bool
		wantFilename string
	}{
		{name: "trusted", opts: ExportOptions{Title: "Sky Towers"}, wantScript: true, wantFilename: "sky-towers.pdf"},
		{name: "sanitized", opts: ExportOptions{Sanitize: true}, wantScript: false, wantFilename: DefaultFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &mockPDFConverter{}
			conv := newTestConverter(t, withPDFConverter(mock))

			res, err := conv.ExportHTML(context.Background(), fragment, tt.opts)
			if err != nil {
				t.Fatalf("ExportHTML() error = %v", err)
			}
			if res.Filename != tt.wantFilename {
				t.Errorf("Filename = %q, want %q", res.Filename, tt.wantFilename)
			}
			if strings.Contains(mock.input, "Add image") {
				t.Error("print-excluded node reached the printer")
			}
			if !strings.Contains(mock.input, "Keep me") {
				t.Error("content was lost")
			}
			if got := strings.Contains(mock.input, "<script>"); got != tt.wantScript {
				t.Errorf("script present = %v, want %v", got, tt.wantScript)
			}
		})
	}
}

func TestConverter_ExportHTML_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty fragment", func(t *testing.T) {
		t.Parallel()

		mock := &mockPDFConverter{}
		conv := newTestConverter(t, withPDFConverter(mock))

		_, err := conv.ExportHTML(context.Background(), "  \n", ExportOptions{})
		if !errors.Is(err, ErrEmptyFragment) {
			t.Errorf("error = %v, want ErrEmptyFragment", err)
		}
		if mock.callCount() != 0 {
			t.Error("printer should not be called")
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, withPDFConverter(&mockPDFConverter{err: ErrPageLoad}))

		_, err := conv.ExportHTML(context.Background(), "<p>x</p>", ExportOptions{})
		if !errors.Is(err, ErrPageLoad) {
			t.Errorf("error = %v, want ErrPageLoad", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		mock := &mockPDFConverter{}
		conv := newTestConverter(t, withPDFConverter(mock))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := conv.ExportHTML(ctx, "<p>x</p>", ExportOptions{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		if mock.callCount() != 0 {
			t.Error("printer should not be called")
		}
	})

	t.Run("panic is recovered", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, withPDFConverter(&mockPDFConverter{panics: true}))

		_, err := conv.ExportHTML(context.Background(), "<p>x</p>", ExportOptions{})
		if err == nil || !strings.Contains(err.Error(), "internal error") {
			t.Errorf("error = %v, want internal error", err)
		}
	})
}

func TestConverter_ExportHTML_CoalescesDuplicates(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		mock := &mockPDFConverter{release: make(chan struct{})}
		conv := newTestConverter(t, withPDFConverter(mock))

		var (
			wg       sync.WaitGroup
			failures atomic.Int32
		)
		for range 3 {
			wg.Go(func() {
				if _, err := conv.ExportHTML(context.Background(), "<p>same</p>", ExportOptions{}); err != nil {
					failures.Add(1)
				}
			})
		}

		synctest.Wait()
		close(mock.release)
		wg.Wait()

		if failures.Load() != 0 {
			t.Errorf("%d exports failed", failures.Load())
		}
		if got := mock.callCount(); got != 1 {
			t.Errorf("printer called %d times, want 1", got)
		}
	})
}

func TestConverter_ExportHTML_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		mock := &mockPDFConverter{release: make(chan struct{})}
		conv := newTestConverter(t, withPDFConverter(mock))

		first, cancelFirst := context.WithCancel(context.Background())
		defer cancelFirst()

		var (
			wg        sync.WaitGroup
			firstErr  error
			secondErr error
			secondRes *ExportResult
		)
		wg.Go(func() {
			_, firstErr = conv.ExportHTML(first, "<p>same</p>", ExportOptions{})
		})
		synctest.Wait()
		wg.Go(func() {
			secondRes, secondErr = conv.ExportHTML(context.Background(), "<p>same</p>", ExportOptions{})
		})
		synctest.Wait()

		cancelFirst()
		synctest.Wait()
		close(mock.release)
		wg.Wait()

		if !errors.Is(firstErr, context.Canceled) {
			t.Errorf("cancelled caller error = %v, want context.Canceled", firstErr)
		}
		if secondErr != nil {
			t.Fatalf("live caller error = %v, want nil", secondErr)
		}
		if !strings.HasPrefix(string(secondRes.PDF), "%PDF") {
			t.Errorf("live caller PDF = %q", secondRes.PDF)
		}
		if got := mock.callCount(); got != 1 {
			t.Errorf("printer called %d times, want 1", got)
		}
	})
}

func TestConverter_ExportHTML_DistinctDocumentsNotCoalesced(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	conv := newTestConverter(t, withPDFConverter(mock))

	for _, fragment := range []string{"<p>one</p>", "<p>two</p>"} {
		if _, err := conv.ExportHTML(context.Background(), fragment, ExportOptions{}); err != nil {
			t.Fatalf("ExportHTML() error = %v", err)
		}
	}
	if got := mock.callCount(); got != 2 {
		t.Errorf("printer called %d times, want 2", got)
	}
}

func TestConverter_Close(t *testing.T) {
	t.Parallel()

	mock := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(mock))
	if err != nil {
		t.Fatal(err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("Close() should close the PDF backend")
	}
}

func TestExportKey(t *testing.T) {
	t.Parallel()

	base := exportKey("<p>x</p>", ExportOptions{Title: "A"})
	if base != exportKey("<p>x</p>", ExportOptions{Title: "A"}) {
		t.Error("same input should give the same key")
	}
	for name, other := range map[string]string{
		"fragment": exportKey("<p>y</p>", ExportOptions{Title: "A"}),
		"title":    exportKey("<p>x</p>", ExportOptions{Title: "B"}),
		"sanitize": exportKey("<p>x</p>", ExportOptions{Title: "A", Sanitize: true}),
	} {
		if other == base {
			t.Errorf("different %s should give a different key", name)
		}
	}
}
