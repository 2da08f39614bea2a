package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	quiet    bool
	verbose  bool
	logLevel string
}

// exportFlags configures the converter.
type exportFlags struct {
	backend     string
	timeout     string
	browserBin  string
	style       string
	templateSet string
	assetPath   string
}

type serveFlags struct {
	common      commonFlags
	export      exportFlags
	addr        string
	cacheDriver string
	cacheDir    string
	cacheDSN    string
	cacheKey    string
	previewMode string
	aiModel     string
}

type renderFlags struct {
	common  commonFlags
	export  exportFlags
	output  string
	mode    string
	title   string
	workers int
	html    bool
}

type planFlags struct {
	common commonFlags
	json   bool
}

type defaultsFlags struct {
	output string
	format string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only print errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print timings and debug logs")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func addExportFlags(fs *flag.FlagSet, f *exportFlags) {
	fs.StringVar(&f.backend, "backend", "", "PDF backend: rod, chromedp")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium executable")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path or inline CSS")
	fs.StringVar(&f.templateSet, "template-set", "", "page template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding embedded styles and templates")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	return fs
}

func buildServeFlagSet(f *serveFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("serve", stderr)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.StringVar(&f.cacheDriver, "cache-driver", "", "brochure cache: file, memory, postgres")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "directory for the file cache")
	fs.StringVar(&f.cacheDSN, "cache-dsn", "", "postgres connection string")
	fs.StringVar(&f.cacheKey, "cache-key", "", "cache entry name")
	fs.StringVarP(&f.previewMode, "mode", "m", "", "default preview mode: portrait, landscape")
	fs.StringVar(&f.aiModel, "ai-model", "", "model used for text suggestions")
	addExportFlags(fs, &f.export)
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printServeUsage(stderr) }
	return fs
}

func buildRenderFlagSet(f *renderFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("render", stderr)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.mode, "mode", "m", "", "arrangement: portrait, landscape")
	fs.StringVar(&f.title, "title", "", "document title (default: brochure title)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "also write the printed HTML next to the PDF")
	addExportFlags(fs, &f.export)
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printRenderUsage(stderr) }
	return fs
}

func buildPlanFlagSet(f *planFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("plan", stderr)
	fs.BoolVar(&f.json, "json", false, "print page descriptors as JSON")
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printPlanUsage(stderr) }
	return fs
}

func buildDefaultsFlagSet(f *defaultsFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("defaults", stderr)
	fs.StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	fs.StringVarP(&f.format, "format", "f", "json", "output format: json, yaml")
	fs.Usage = func() { printDefaultsUsage(stderr) }
	return fs
}

// mergeExportFlags applies set flags over cfg. CLI wins.
func mergeExportFlags(f *exportFlags, common *commonFlags, cfg *config.Config) error {
	setString(&cfg.Export.Backend, f.backend)
	setString(&cfg.Export.BrowserBin, f.browserBin)
	setString(&cfg.Assets.Style, f.style)
	setString(&cfg.Assets.TemplateSet, f.templateSet)
	setString(&cfg.Assets.BasePath, f.assetPath)
	setString(&cfg.Log.Level, common.logLevel)
	if common.verbose && common.logLevel == "" {
		cfg.Log.Level = "debug"
	}

	if f.timeout != "" {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: --timeout %q must be a positive duration", ErrUsage, f.timeout)
		}
		cfg.Export.Timeout = config.Duration(d)
	}
	return nil
}

// validateWorkers checks the worker count bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > brochure.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, brochure.MaxPoolSize)
	}
	return nil
}
