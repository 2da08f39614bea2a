// Package imageutil turns uploaded or local image files into optimized
// data URIs suitable for embedding in brochure content.
package imageutil

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// Defaults for optimization.
const (
	DefaultMaxDimension = 1600
	DefaultJPEGQuality  = 82

	// MaxInputSize bounds the raw bytes read from one image.
	MaxInputSize = 10 << 20
)

// Sentinel errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("image decoding failed")
	ErrEncode            = errors.New("image encoding failed")
	ErrTooLarge          = errors.New("image exceeds size limit")
	ErrInvalidDataURI    = errors.New("invalid data URI")
)

// Options controls resizing and re-encoding.
type Options struct {
	// MaxDimension caps the longer side in pixels. Zero disables resizing.
	MaxDimension int
	// JPEGQuality is used for photos (1-100).
	JPEGQuality int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{MaxDimension: DefaultMaxDimension, JPEGQuality: DefaultJPEGQuality}
}

func (o Options) normalized() Options {
	if o.MaxDimension < 0 {
		o.MaxDimension = 0
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	return o
}

// supported maps sniffed content types to the format used for re-encoding.
// PNG and GIF keep a lossless format so logos and plans retain transparency.
var supported = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.PNG,
	"image/bmp":  imaging.JPEG,
}

var mimeFor = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
}

// Optimize decodes r, fits it within opts.MaxDimension and re-encodes it.
// It returns the encoded bytes and their MIME type.
func Optimize(r io.Reader, opts Options) ([]byte, string, error) {
	opts = opts.normalized()

	raw, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}
	if len(raw) > MaxInputSize {
		return nil, "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxInputSize)
	}

	sniffed := http.DetectContentType(raw)
	format, ok := supported[sniffed]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, sniffed)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	img = fit(img, opts.MaxDimension)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(opts.JPEGQuality)); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), mimeFor[format], nil
}

func fit(img image.Image, maxDim int) image.Image {
	if maxDim == 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

// EncodeDataURI optimizes r and returns it as a base64 data URI.
func EncodeDataURI(r io.Reader, opts Options) (string, error) {
	data, mime, err := Optimize(r, opts)
	if err != nil {
		return "", err
	}
	return DataURI(mime, data), nil
}

// FileDataURI reads the image at path and returns it as an optimized data URI.
func FileDataURI(path string, opts Options) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- callers restrict path to a content directory
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = f.Close() }()
	return EncodeDataURI(f, opts)
}

// DataURI formats data as a base64 data URI of the given MIME type.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI decodes a base64 image data URI into its MIME type and bytes.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := cutPrefixFold(strings.TrimSpace(uri), "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	mime, params, _ := strings.Cut(header, ";")
	mime = strings.ToLower(strings.TrimSpace(mime))
	if !strings.HasPrefix(mime, "image/") {
		return "", nil, fmt.Errorf("%w: not an image: %q", ErrInvalidDataURI, mime)
	}
	if !strings.EqualFold(strings.TrimSpace(params), "base64") {
		return "", nil, fmt.Errorf("%w: payload must be base64", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mime, data, nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
