package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/imageutil"
)

// ErrLocalImage indicates a local image file could not be embedded.
var ErrLocalImage = errors.New("local image could not be embedded")

// ResolveLocalImages embeds image references that name files relative to
// sourceDir as optimized data URIs. If sourceDir is empty, b is returned
// unchanged.
//
// Left untouched:
//   - URLs and data URIs (already resolvable by the browser)
//   - absolute paths
//   - paths escaping sourceDir
func ResolveLocalImages(ctx context.Context, b content.Brochure, sourceDir string, opts imageutil.Options) (content.Brochure, error) {
	if sourceDir == "" {
		return b, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return b, fmt.Errorf("%w: %v", ErrLocalImage, err)
	}

	return b.MapImages(func(ref content.ImageRef) (content.ImageRef, error) {
		if err := ctx.Err(); err != nil {
			return ref, err
		}
		path := strings.TrimSpace(string(ref))
		if !isRelativePath(path) {
			return ref, nil
		}

		absPath := filepath.Join(absSourceDir, path)
		if !isPathUnderDir(absPath, absSourceDir) {
			return ref, nil
		}

		uri, err := imageutil.FileDataURI(absPath, opts)
		if err != nil {
			return ref, fmt.Errorf("%w: %s: %v", ErrLocalImage, path, err)
		}
		return content.ImageRef(uri), nil
	})
}

// isRelativePath reports whether path names a file relative to the content.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}
	lower := strings.ToLower(path)
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//"} {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
