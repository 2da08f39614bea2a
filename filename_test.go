package brochure

import (
	"strings"
	"testing"
)

func TestExportFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple", title: "Grand Vista", want: "grand-vista.pdf"},
		{name: "accents folded", title: "Résidence Côte d'Azur", want: "residence-cote-d-azur.pdf"},
		{name: "punctuation collapsed", title: "  Sky -- Towers!! Phase 2 ", want: "sky-towers-phase-2.pdf"},
		{name: "empty", title: "", want: DefaultFilename},
		{name: "symbols only", title: "★ ☆ ★", want: DefaultFilename},
		{name: "non latin", title: "東京タワー", want: DefaultFilename},
		{name: "path separators", title: "../../etc/passwd", want: "etc-passwd.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExportFilename(tt.title); got != tt.want {
				t.Errorf("ExportFilename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestExportFilename_Truncates(t *testing.T) {
	t.Parallel()

	got := ExportFilename(strings.Repeat("ab ", 100))
	stem := strings.TrimSuffix(got, ".pdf")
	if len(stem) > maxFilenameStem {
		t.Errorf("stem length = %d, want <= %d", len(stem), maxFilenameStem)
	}
	if strings.HasSuffix(stem, "-") {
		t.Errorf("stem %q should not end with a hyphen", stem)
	}
}
