package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-brochure/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html", extension: "html"},
		{name: "pdf", extension: "pdf"},
		{name: "empty extension", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "forward slash path traversal", extension: "../etc/passwd", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash path traversal", extension: "..\\windows", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte injection", extension: "html\x00exe", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		extension string
	}{
		{name: "html document", content: `<section class="page"></section>`, extension: "html"},
		{name: "empty content", content: "", extension: "html"},
		{name: "unicode content", content: "<p>Résidence · Ünïcode</p>", extension: "html"},
		{name: "large content", content: strings.Repeat("x", 1<<20), extension: "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, cleanup, err := fileutil.WriteTempFile(tt.content, tt.extension)
			if err != nil {
				t.Fatalf("WriteTempFile() error = %v", err)
			}
			defer cleanup()

			if !strings.HasPrefix(filepath.Base(path), fileutil.TempPrefix) {
				t.Errorf("path %q does not start with %q", path, fileutil.TempPrefix)
			}
			if !strings.HasSuffix(path, "."+tt.extension) {
				t.Errorf("path %q does not have extension .%s", path, tt.extension)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read temp file: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("file content has %d bytes, want %d", len(data), len(tt.content))
			}
		})
	}
}

func TestWriteTempFile_Cleanup(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("test content", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}
	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup at %s", path)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("content", "../foo")
	if cleanup != nil {
		defer cleanup()
	}
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("WriteTempFile() error = %v, want ErrExtensionPathTraversal", err)
	}
}

// Modifies TMPDIR, so not parallel.
func TestWriteTempFile_CreateTempError(t *testing.T) {
	t.Setenv("TMPDIR", "/nonexistent/path/that/does/not/exist")

	_, cleanup, err := fileutil.WriteTempFile("content", "html")
	if cleanup != nil {
		defer cleanup()
	}
	if err == nil || !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("WriteTempFile() error = %v, want error containing 'creating temp file'", err)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parents and writes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cache", "nested", "brochure.json")
		if err := fileutil.WriteFileAtomic(path, []byte(`{"a":1}`)); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"a":1}` {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.pdf")
		if err := os.WriteFile(path, []byte("old content"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("new")); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "new" {
			t.Errorf("content = %q, want new", data)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		if err := fileutil.WriteFileAtomic(" ", nil); !errors.Is(err, fileutil.ErrEmptyPath) {
			t.Errorf("error = %v, want ErrEmptyPath", err)
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.txt")
	if err := os.WriteFile(testFile, []byte("content"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "existing file", path: testFile, want: true},
		{name: "directory", path: tempDir, want: false},
		{name: "nonexistent path", path: filepath.Join(tempDir, "nonexistent"), want: false},
		{name: "empty path", path: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"default":             false,
		"luxury-dark":         false,
		"name.with.dots":      false,
		"":                    false,
		"./custom.css":        true,
		"../shared/style.css": true,
		"/absolute/path.css":  true,
		"C:\\styles\\a.css":   true,
	}

	for input, want := range tests {
		if got := fileutil.IsFilePath(input); got != want {
			t.Errorf("IsFilePath(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestIsCSS(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"default":                false,
		"./custom.css":           false,
		"":                       false,
		".page { color: red; }":  true,
		"h1 { a: b } p { c: d }": true,
		"body {":                 true,
	}

	for input, want := range tests {
		if got := fileutil.IsCSS(input); got != want {
			t.Errorf("IsCSS(%q) = %v, want %v", input, got, want)
		}
	}
}
