package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestOptimize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		w, h   int
		maxDim int
		wantW  int
		wantH  int
	}{
		{name: "small image untouched", w: 40, h: 20, maxDim: 100, wantW: 40, wantH: 20},
		{name: "landscape fitted", w: 400, h: 200, maxDim: 100, wantW: 100, wantH: 50},
		{name: "portrait fitted", w: 120, h: 480, maxDim: 60, wantW: 15, wantH: 60},
		{name: "resize disabled", w: 300, h: 300, maxDim: 0, wantW: 300, wantH: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, mime, err := Optimize(bytes.NewReader(encodePNG(t, tt.w, tt.h)), Options{MaxDimension: tt.maxDim})
			if err != nil {
				t.Fatalf("Optimize() error = %v", err)
			}
			if mime != "image/png" {
				t.Errorf("mime = %q, want image/png", mime)
			}
			img, err := imaging.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decoding output: %v", err)
			}
			if got := img.Bounds(); got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestOptimize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "text", input: []byte("hello, world"), wantErr: ErrUnsupportedFormat},
		{name: "truncated png", input: encodePNG(t, 10, 10)[:40], wantErr: ErrDecode},
		{name: "too large", input: make([]byte, MaxInputSize+1), wantErr: ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Optimize(bytes.NewReader(tt.input), DefaultOptions())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	t.Parallel()

	uri, err := EncodeDataURI(bytes.NewReader(encodePNG(t, 8, 8)), DefaultOptions())
	if err != nil {
		t.Fatalf("EncodeDataURI() error = %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("uri prefix = %q", uri[:30])
	}

	mime, data, err := ParseDataURI(uri)
	if err != nil {
		t.Fatalf("ParseDataURI() error = %v", err)
	}
	if mime != "image/png" || len(data) == 0 {
		t.Errorf("ParseDataURI() = %q, %d bytes", mime, len(data))
	}
}

func TestParseDataURI_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uri  string
	}{
		{name: "http url", uri: "https://example.com/a.png"},
		{name: "no comma", uri: "data:image/png;base64"},
		{name: "not image", uri: "data:text/plain;base64,aGk="},
		{name: "not base64", uri: "data:image/svg+xml,<svg/>"},
		{name: "bad payload", uri: "data:image/png;base64,@@@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := ParseDataURI(tt.uri); !errors.Is(err, ErrInvalidDataURI) {
				t.Errorf("ParseDataURI(%q) error = %v, want ErrInvalidDataURI", tt.uri, err)
			}
		})
	}
}

func TestFileDataURI(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, encodePNG(t, 4, 4), 0o644); err != nil {
		t.Fatal(err)
	}

	uri, err := FileDataURI(path, DefaultOptions())
	if err != nil {
		t.Fatalf("FileDataURI() error = %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("unexpected uri %q", uri[:24])
	}

	if _, err := FileDataURI(filepath.Join(t.TempDir(), "missing.png"), DefaultOptions()); err == nil {
		t.Error("expected error for missing file")
	}
}
