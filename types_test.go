package brochure

import (
	"errors"
	"testing"
)

func TestParseBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Backend
		wantErr bool
	}{
		{input: "", want: BackendRod},
		{input: "rod", want: BackendRod},
		{input: " Chromedp ", want: BackendChromedp},
		{input: "wkhtmltopdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseBackend(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBackend) {
					t.Errorf("ParseBackend(%q) error = %v, want ErrInvalidBackend", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBackend(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBackend(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseViewMode(t *testing.T) {
	t.Parallel()

	if m, err := ParseViewMode("LANDSCAPE"); err != nil || m != Landscape {
		t.Errorf("ParseViewMode(LANDSCAPE) = %q, %v", m, err)
	}
	if _, err := ParseViewMode("diagonal"); !errors.Is(err, ErrInvalidViewMode) {
		t.Errorf("error = %v, want ErrInvalidViewMode", err)
	}
}
