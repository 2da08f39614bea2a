package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestStripPrintExcluded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "removes empty-state box",
			html:         `<section class="page"><div class="slot"><div class="image-empty" data-print-exclude="true"><span>hint</span></div></div><p>kept</p></section>`,
			wantContains: []string{`<div class="slot"></div>`, "<p>kept</p>"},
			wantExcludes: []string{"image-empty", "hint"},
		},
		{
			name:         "removes blank spread page and divider",
			html:         `<div class="spread"><section class="page">A</section><div class="spread__divider" data-print-exclude="true"></div><div class="page page--blank" data-print-exclude="true"></div></div>`,
			wantContains: []string{`<section class="page">A</section>`},
			wantExcludes: []string{"spread__divider", "page--blank"},
		},
		{
			name:         "attribute without value",
			html:         `<p>a</p><div data-print-exclude>b</div>`,
			wantContains: []string{"<p>a</p>"},
			wantExcludes: []string{">b<"},
		},
		{
			name:         "no marker returns input",
			html:         `<section class="page"><img src="data:image/png;base64,AAAA"/></section>`,
			wantContains: []string{`<img src="data:image/png;base64,AAAA"/>`},
		},
		{
			name:         "full document keeps head",
			html:         `<!DOCTYPE html><html><head><title>T</title></head><body><i data-print-exclude="true">x</i><b>y</b></body></html>`,
			wantContains: []string{"<title>T</title>", "<b>y</b>", "<!DOCTYPE html>"},
			wantExcludes: []string{"<i"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := StripPrintExcluded(context.Background(), tt.html)
			if err != nil {
				t.Fatalf("StripPrintExcluded() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("result %q missing %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("result %q should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestStripPrintExcluded_FragmentStaysFragment(t *testing.T) {
	t.Parallel()

	got, err := StripPrintExcluded(context.Background(), `<div id="brochure-container"><span data-print-exclude="true"></span></div>`)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<html") || strings.Contains(got, "<body") {
		t.Errorf("fragment was wrapped: %q", got)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(got))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find("#brochure-container").Children().Length() != 0 {
		t.Errorf("excluded child survived: %q", got)
	}
}

func TestStripPrintExcluded_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := StripPrintExcluded(ctx, "<p></p>"); err == nil {
		t.Error("expected context error")
	}
}
