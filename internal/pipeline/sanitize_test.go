package pipeline

import (
	"strings"
	"testing"
)

func TestSanitizer(t *testing.T) {
	t.Parallel()

	s := NewSanitizer()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "keeps layout markup",
			html:         `<section class="page page--cover" data-page-kind="cover"><header class="page__header">H</header></section>`,
			wantContains: []string{`class="page page--cover"`, `data-page-kind="cover"`, `<header class="page__header">`},
		},
		{
			name:         "keeps embedded images",
			html:         `<img src="data:image/png;base64,iVBORw0KGgo=" class="fit-cover" alt="a">`,
			wantContains: []string{`src="data:image/png;base64,iVBORw0KGgo="`, `class="fit-cover"`},
		},
		{
			name:         "drops scripts",
			html:         `<p>ok</p><script>alert(1)</script>`,
			wantContains: []string{"<p>ok</p>"},
			wantExcludes: []string{"script", "alert"},
		},
		{
			name:         "drops event handlers",
			html:         `<div class="x" onclick="steal()">t</div>`,
			wantExcludes: []string{"onclick", "steal"},
		},
		{
			name:         "drops javascript urls",
			html:         `<a href="javascript:alert(1)">x</a>`,
			wantExcludes: []string{"javascript"},
		},
		{
			name:         "keeps print exclusion marker",
			html:         `<div class="image-empty" data-print-exclude="true"></div>`,
			wantContains: []string{`data-print-exclude="true"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Sanitize(tt.html)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize() = %q, missing %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("Sanitize() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}
