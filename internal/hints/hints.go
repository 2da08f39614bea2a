// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"context"
	"errors"
	"os"
	"strings"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/assets"
	"github.com/alnah/go-brochure/internal/config"
	"github.com/alnah/go-brochure/internal/fileutil"
	"github.com/alnah/go-brochure/internal/store"
	"github.com/alnah/go-brochure/internal/suggest"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// For returns the hint matching err, or "" when there is none.
func For(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, brochure.ErrBrowserConnect), errors.Is(err, brochure.ErrPageCreate):
		return ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return ForConfigNotFound()
	case errors.Is(err, assets.ErrStyleNotFound):
		return format("the built-in style is " + assets.DefaultStyleName + "; custom styles live in <asset-path>/styles/<name>.css")
	case errors.Is(err, assets.ErrTemplateSetNotFound), errors.Is(err, assets.ErrIncompleteTemplateSet):
		return format("a template set needs " + strings.Join(assets.RequiredTemplates, ", ") + " under <asset-path>/templates/<name>/")
	case errors.Is(err, store.ErrMissingDSN):
		return format("set cache.dsn or BROCHURE_CACHE_DSN, or use --cache-driver file")
	case errors.Is(err, suggest.ErrMissingAPIKey):
		return format("set GEMINI_API_KEY (or BROCHURE_AI_API_KEY) to enable suggestions")
	case errors.Is(err, content.ErrUnsupportedFile):
		return format("brochure files must end in .json, .yaml or .yml")
	case errors.Is(err, content.ErrInvalidContent):
		return format("run 'brochure defaults' for a valid starting document")
	default:
		return ""
	}
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environments and suggests the relevant variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" && os.Getenv("BROCHURE_BROWSER_BIN") == "" {
		hints = append(hints, "set BROCHURE_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'brochure doctor' to check the browser")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the export timeout.
func ForTimeout() string {
	return format("brochures with many embedded images may need a longer --timeout")
}

// ForConfigNotFound returns a hint for missing config files.
func ForConfigNotFound() string {
	hint := "use --config /path/to/file.yaml"
	if dir, err := os.UserConfigDir(); err == nil {
		hint += " or create " + dir + "/go-brochure/<name>.yaml"
	}
	return format(hint)
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
