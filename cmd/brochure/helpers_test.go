package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and fake pool
// ---------------------------------------------------------------------------

var errFakeExport = errors.New("fake export failure")

// failTitle makes fakeExporter fail for a brochure with this title.
const failTitle = "fail me"

// fakeExporter returns a fixed PDF without a browser.
type fakeExporter struct {
	mu    sync.Mutex
	calls []brochure.ExportOptions
}

func (f *fakeExporter) EmbedLocalImages(_ context.Context, b content.Brochure, _ string) (content.Brochure, error) {
	return b, nil
}

func (f *fakeExporter) Export(_ context.Context, b content.Brochure, opts brochure.ExportOptions) (*brochure.ExportResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, opts)
	f.mu.Unlock()
	if b.Meta.BrochureTitle == failTitle {
		return nil, errFakeExport
	}
	return &brochure.ExportResult{
		PDF:         []byte("%PDF-1.7 fake"),
		HTML:        []byte("<html>" + b.Meta.BrochureTitle + "</html>"),
		Filename:    brochure.ExportFilename(opts.Title),
		ContentType: brochure.ContentTypePDF,
	}, nil
}

// fakePool hands out one shared fakeExporter.
type fakePool struct {
	size       int
	exporter   *fakeExporter
	acquireErr error
	closed     bool
}

func (p *fakePool) Acquire() (Exporter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.exporter, nil
}

func (p *fakePool) Release(Exporter) {}
func (p *fakePool) Size() int        { return p.size }
func (p *fakePool) Close() error     { p.closed = true; return nil }

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
	pool   *fakePool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   map[string]string{},
		pool:   &fakePool{exporter: &fakeExporter{}},
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return te.vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(te.vars))
			for k, v := range te.vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewPool: func(size int, _ ...brochure.Option) Pool {
			te.pool.size = size
			return te.pool
		},
	}
	return te
}

// writeBrochure writes b as JSON to dir/name and returns its path.
func writeBrochure(t *testing.T, dir, name string, b content.Brochure) string {
	t.Helper()

	data, err := content.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func titled(title string) content.Brochure {
	b := content.Default()
	b.Meta.BrochureTitle = title
	return b
}
