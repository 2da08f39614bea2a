package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/fileutil"
	"github.com/alnah/go-brochure/internal/logging"
)

// Sentinel errors for render.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrConverterInit  = errors.New("failed to initialize converter")
	ErrRenderFailures = errors.New("some brochures failed to render")
)

const dirPermissions = 0o750

// brochureExtensions are the file types render and plan accept.
var brochureExtensions = map[string]bool{".json": true, ".yaml": true, ".yml": true}

// FileToRender is one brochure file and its PDF destination.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// RenderResult is the outcome of one file.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// renderParams are shared by every file of a batch.
type renderParams struct {
	mode  brochure.ViewMode
	title string
	html  bool
}

func runRender(ctx context.Context, args []string, env *Environment) error {
	f := &renderFlags{}
	fset := buildRenderFlagSet(f, env.Stderr)
	if err := fset.Parse(args); err != nil {
		return usageError(err)
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}
	if fset.NArg() == 0 {
		return fmt.Errorf("%w: pass a brochure file or directory", ErrNoInput)
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if err := mergeExportFlags(&f.export, &f.common, cfg); err != nil {
		return err
	}
	setString(&cfg.Preview.Mode, f.mode)
	if f.workers > 0 {
		cfg.Export.Workers = f.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, err := brochure.ParseViewMode(cfg.Preview.Mode)
	if err != nil {
		return err
	}

	files, err := discoverFiles(fset.Args(), f.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .json, .yaml or .yml brochures in %s", ErrNoInput, strings.Join(fset.Args(), ", "))
	}

	level := cfg.Log.Level
	if level == "" {
		level = "warn"
	}
	logger := logging.New(level)
	defer func() { _ = logger.Sync() }()

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	poolSize := brochure.ResolvePoolSize(cfg.Export.Workers)
	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	results := renderBatch(ctx, pool, files, renderParams{mode: mode, title: f.title, html: f.html}, logger)
	return printResults(results, f.common.quiet, f.common.verbose, env)
}

// renderBatch renders files concurrently, at most pool.Size() at a time.
// Results keep the order of files.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params renderParams, logger *zap.Logger) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]RenderResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			exp, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: fmt.Errorf("%w: %w", ErrConverterInit, err)}
				}
				return
			}
			defer pool.Release(exp)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = renderFile(ctx, exp, files[idx], params)
				logger.Debug("brochure rendered",
					zap.String("input", files[idx].InputPath),
					zap.Duration("duration", results[idx].Duration),
					zap.Error(results[idx].Err),
				)
			}
		})
	}
	wg.Wait()
	return results
}

// renderFile loads, embeds local images, prints and writes one brochure.
func renderFile(ctx context.Context, exp Exporter, f FileToRender, params renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	b, err := content.LoadFile(f.InputPath)
	if err != nil {
		return fail(err)
	}
	b, err = exp.EmbedLocalImages(ctx, b, filepath.Dir(f.InputPath))
	if err != nil {
		return fail(fmt.Errorf("embedding images: %w", err))
	}

	res, err := exp.Export(ctx, b, brochure.ExportOptions{Title: params.title, Mode: params.mode})
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWritePDF, err))
	}
	if params.html {
		if err := fileutil.WriteFileAtomic(htmlOutputPath(f.OutputPath), res.HTML); err != nil {
			return fail(fmt.Errorf("writing HTML file: %w", err))
		}
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, res.PDF); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWritePDF, err))
	}

	result.Duration = time.Since(start)
	return result
}

// discoverFiles expands inputs into brochure files. Directories are walked
// recursively; explicitly named files must have a brochure extension.
func discoverFiles(inputs []string, output string) ([]FileToRender, error) {
	var files []FileToRender
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !isBrochureFile(input) {
				return nil, fmt.Errorf("%w: %s", content.ErrUnsupportedFile, input)
			}
			files = append(files, FileToRender{InputPath: input, OutputPath: resolveOutputPath(input, output, "")})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !isBrochureFile(path) {
				return nil
			}
			files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, output, input)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Several inputs cannot share one .pdf destination.
	if len(files) > 1 && strings.HasSuffix(output, ".pdf") {
		return nil, fmt.Errorf("%w: --output %s names a file but %d brochures were found", ErrUsage, output, len(files))
	}
	return files, nil
}

func isBrochureFile(path string) bool {
	return brochureExtensions[strings.ToLower(filepath.Ext(path))]
}

// resolveOutputPath determines the PDF path for a brochure file. Files
// found under baseInputDir keep their relative directory inside output.
func resolveOutputPath(inputPath, output, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".pdf")
	}
	if strings.HasSuffix(output, ".pdf") {
		return output
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, filepath.Dir(rel), base+".pdf")
		}
	}
	return filepath.Join(output, base+".pdf")
}

func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}

// printResults reports each file and returns an error wrapping the first
// failure, so the exit code reflects its cause.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) error {
	var failed int
	var first error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	if failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return first
	}
	return fmt.Errorf("%w: %d of %d: %w", ErrRenderFailures, failed, len(results), first)
}
