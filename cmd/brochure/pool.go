package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/config"
	"github.com/alnah/go-brochure/internal/imageutil"
)

// Exporter renders and prints brochures loaded from files.
type Exporter interface {
	EmbedLocalImages(ctx context.Context, b content.Brochure, sourceDir string) (content.Brochure, error)
	Export(ctx context.Context, b content.Brochure, opts brochure.ExportOptions) (*brochure.ExportResult, error)
}

var _ Exporter = (*brochure.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Exporter, error)
	Release(Exporter)
	Size() int
	Close() error
}

// poolAdapter adapts *brochure.ConverterPool to Pool.
type poolAdapter struct {
	pool *brochure.ConverterPool
}

func newConverterPool(size int, opts ...brochure.Option) Pool {
	return &poolAdapter{pool: brochure.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire() (Exporter, error) {
	c, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release panics on an Exporter this pool did not hand out.
func (a *poolAdapter) Release(e Exporter) {
	c, ok := e.(*brochure.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", e))
	}
	a.pool.Release(c)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }

// converterOptions translates cfg into converter options.
func converterOptions(cfg *config.Config, logger *zap.Logger) ([]brochure.Option, error) {
	backend, err := brochure.ParseBackend(cfg.Export.Backend)
	if err != nil {
		return nil, err
	}
	opts := []brochure.Option{
		brochure.WithBackend(backend),
		brochure.WithBrowserBin(cfg.Export.BrowserBin),
		brochure.WithStyle(cfg.Assets.Style),
		brochure.WithAssetPath(cfg.Assets.BasePath),
		brochure.WithTemplateSetName(cfg.Assets.TemplateSet),
		brochure.WithImageOptions(imageutil.Options{
			MaxDimension: cfg.Images.MaxDimension,
			JPEGQuality:  cfg.Images.JPEGQuality,
		}),
		brochure.WithLogger(logger),
	}
	if d := cfg.Export.Timeout.Std(); d > 0 {
		opts = append(opts, brochure.WithTimeout(d))
	}
	return opts, nil
}
