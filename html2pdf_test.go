package brochure

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

type mockRenderer struct {
	path    string
	content string
	opts    *pdfOptions
	err     error
	closed  bool
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.path = filePath
	m.opts = opts
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	m.content = string(data)
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF"), nil
}

func (m *mockRenderer) Close() error {
	m.closed = true
	return nil
}

func TestFileConverter_ToPDF(t *testing.T) {
	t.Parallel()

	r := &mockRenderer{}
	c := &fileConverter{renderer: r}

	pdf, err := c.ToPDF(context.Background(), "<p>page</p>", a4Options())
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(pdf) != "%PDF" {
		t.Errorf("pdf = %q", pdf)
	}
	if r.content != "<p>page</p>" {
		t.Errorf("renderer read %q", r.content)
	}
	if !strings.HasSuffix(r.path, ".html") {
		t.Errorf("temp file %q should have .html extension", r.path)
	}
	if _, err := os.Stat(r.path); !os.IsNotExist(err) {
		t.Error("temp file should be removed after rendering")
	}

	if err := c.Close(); err != nil || !r.closed {
		t.Errorf("Close() = %v, closed = %v", err, r.closed)
	}
}

func TestFileConverter_ToPDF_Error(t *testing.T) {
	t.Parallel()

	c := &fileConverter{renderer: &mockRenderer{err: ErrPDFGeneration}}

	if _, err := c.ToPDF(context.Background(), "<p>x</p>", nil); !errors.Is(err, ErrPDFGeneration) {
		t.Errorf("error = %v, want ErrPDFGeneration", err)
	}
}

func TestBuildPrintOptions(t *testing.T) {
	t.Parallel()

	for _, opts := range []*pdfOptions{nil, a4Options()} {
		p := buildPrintOptions(opts)

		if *p.PaperWidth != a4WidthInches || *p.PaperHeight != a4HeightInches {
			t.Errorf("paper = %vx%v, want A4", *p.PaperWidth, *p.PaperHeight)
		}
		for name, m := range map[string]*float64{
			"top": p.MarginTop, "bottom": p.MarginBottom, "left": p.MarginLeft, "right": p.MarginRight,
		} {
			if m == nil || *m != 0 {
				t.Errorf("margin %s should be zero", name)
			}
		}
		if !p.PrintBackground || !p.PreferCSSPageSize {
			t.Error("backgrounds and CSS page size should be enabled")
		}
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout, "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.RenderFromFile(ctx, "/nonexistent.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("no browser should be launched for a cancelled context")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without browser error = %v", err)
	}
}

func TestChromedpRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	r := newChromedpRenderer(defaultTimeout, "/opt/chrome")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.RenderFromFile(ctx, "/nonexistent.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDetectChromePath_Explicit(t *testing.T) {
	t.Parallel()

	if got := detectChromePath("/opt/chrome"); got != "/opt/chrome" {
		t.Errorf("detectChromePath() = %q, want explicit path", got)
	}
}

func TestDetectChromePath_Env(t *testing.T) {
	t.Setenv("CHROME_PATH", "/env/chrome")

	if got := detectChromePath(""); got != "/env/chrome" {
		t.Errorf("detectChromePath() = %q, want CHROME_PATH", got)
	}
}

func TestResolveBrowserBin(t *testing.T) {
	t.Setenv("ROD_BROWSER_BIN", "/env/chromium")

	if got := resolveBrowserBin("/flag/chromium"); got != "/flag/chromium" {
		t.Errorf("explicit bin = %q", got)
	}
	if got := resolveBrowserBin(""); got != "/env/chromium" {
		t.Errorf("env bin = %q", got)
	}
}
