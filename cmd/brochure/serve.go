package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/internal/config"
	"github.com/alnah/go-brochure/internal/imageutil"
	"github.com/alnah/go-brochure/internal/logging"
	"github.com/alnah/go-brochure/internal/server"
	"github.com/alnah/go-brochure/internal/session"
	"github.com/alnah/go-brochure/internal/store"
	"github.com/alnah/go-brochure/internal/suggest"
)

// ErrCacheOpen indicates the brochure cache could not be opened.
var ErrCacheOpen = errors.New("failed to open brochure cache")

func runServe(ctx context.Context, args []string, env *Environment) error {
	f := &serveFlags{}
	fs := buildServeFlagSet(f, env.Stderr)
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, strings.Join(fs.Args(), " "))
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	if err := mergeServeFlags(f, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, err := brochure.ParseViewMode(cfg.Preview.Mode)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	cache, err := store.Open(ctx, store.Config{
		Driver: store.Driver(cfg.Cache.Driver),
		Dir:    cfg.Cache.Dir,
		DSN:    cfg.Cache.DSN,
		Key:    cfg.Cache.Key,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCacheOpen, err)
	}
	defer func() { _ = cache.Close() }()

	sess := session.Open(ctx, cache, logger)

	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}
	conv, err := brochure.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	suggester, err := newSuggester(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Deps{
		Session:   sess,
		Engine:    conv,
		Suggester: suggester,
		Images: imageutil.Options{
			MaxDimension: cfg.Images.MaxDimension,
			JPEGQuality:  cfg.Images.JPEGQuality,
		},
		PreviewMode: mode,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("cache", cfg.Cache.Driver),
		zap.String("backend", cfg.Export.Backend),
		zap.String("version", Version),
	)
	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Editor API listening on %s\n", cfg.Server.Addr)
	}

	return server.Run(ctx, srv.Handler(), server.ListenConfig{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	}, logger)
}

// mergeServeFlags applies set serve flags over cfg.
func mergeServeFlags(f *serveFlags, cfg *config.Config) error {
	setString(&cfg.Server.Addr, f.addr)
	setString(&cfg.Cache.Driver, f.cacheDriver)
	setString(&cfg.Cache.Dir, f.cacheDir)
	setString(&cfg.Cache.DSN, f.cacheDSN)
	setString(&cfg.Cache.Key, f.cacheKey)
	setString(&cfg.Preview.Mode, f.previewMode)
	setString(&cfg.AI.Model, f.aiModel)
	return mergeExportFlags(&f.export, &f.common, cfg)
}

// newSuggester returns nil without an API key; suggestion routes then
// answer 503 and the rest of the editor keeps working.
func newSuggester(ctx context.Context, cfg *config.Config, logger *zap.Logger) (suggest.Suggester, error) {
	if strings.TrimSpace(cfg.AI.APIKey) == "" {
		logger.Info("text suggestions disabled: no API key configured")
		return nil, nil
	}
	g, err := suggest.NewGemini(ctx, suggest.Config{APIKey: cfg.AI.APIKey, Model: cfg.AI.Model}, logger)
	if err != nil {
		return nil, err
	}
	return g, nil
}
