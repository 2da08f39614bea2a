package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/assets"
	"github.com/alnah/go-brochure/internal/config"
	"github.com/alnah/go-brochure/internal/store"
	"github.com/alnah/go-brochure/internal/suggest"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage, and
// custom codes below 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or content
	ExitIO      = 3 // File not found, permission denied, cache unreachable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the exit code for err. Callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, brochure.ErrBrowserConnect) ||
		errors.Is(err, brochure.ErrPageCreate) ||
		errors.Is(err, brochure.ErrPageLoad) ||
		errors.Is(err, brochure.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrCacheOpen) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, content.ErrInvalidContent) ||
		errors.Is(err, content.ErrUnsupportedFile) ||
		errors.Is(err, brochure.ErrInvalidViewMode) ||
		errors.Is(err, brochure.ErrInvalidBackend) ||
		errors.Is(err, brochure.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateSetNotFound) ||
		errors.Is(err, assets.ErrIncompleteTemplateSet) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, store.ErrInvalidDriver) ||
		errors.Is(err, store.ErrInvalidKey) ||
		errors.Is(err, store.ErrMissingDSN) ||
		errors.Is(err, suggest.ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}

// usageError wraps pflag parse failures so they map to ExitUsage.
func usageError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
