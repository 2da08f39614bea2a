// Package server exposes the brochure editor over HTTP.
//
// One Session holds the brochure being edited; handlers apply content
// operations to it and return the resulting document. Rendering and export
// go through an Engine, normally a *brochure.Converter.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/imageutil"
	"github.com/alnah/go-brochure/internal/logging"
	"github.com/alnah/go-brochure/internal/session"
	"github.com/alnah/go-brochure/internal/suggest"
)

// Engine plans, previews and exports brochures.
type Engine interface {
	Plan(b content.Brochure) []brochure.PageDescriptor
	Preview(ctx context.Context, b content.Brochure, mode brochure.ViewMode) (string, error)
	Export(ctx context.Context, b content.Brochure, opts brochure.ExportOptions) (*brochure.ExportResult, error)
	ExportHTML(ctx context.Context, fragment string, opts brochure.ExportOptions) (*brochure.ExportResult, error)
}

var _ Engine = (*brochure.Converter)(nil)

// Deps are the collaborators of a Server.
type Deps struct {
	Session *session.Session
	Engine  Engine

	// Suggester may be nil; suggestion routes then answer 503.
	Suggester suggest.Suggester

	Images      imageutil.Options
	PreviewMode brochure.ViewMode
	Logger      *zap.Logger

	// RequestTimeout bounds each request. Zero means 2 minutes.
	RequestTimeout time.Duration
}

// Server holds the HTTP handlers.
type Server struct {
	session     *session.Session
	engine      Engine
	suggester   suggest.Suggester
	images      imageutil.Options
	previewMode brochure.ViewMode
	logger      *zap.Logger
	timeout     time.Duration
}

const defaultRequestTimeout = 2 * time.Minute

// New creates a Server. Session and Engine are required.
func New(deps Deps) (*Server, error) {
	if deps.Session == nil || deps.Engine == nil {
		return nil, errors.New("server: session and engine are required")
	}
	s := &Server{
		session:     deps.Session,
		engine:      deps.Engine,
		suggester:   deps.Suggester,
		images:      deps.Images,
		previewMode: deps.PreviewMode,
		logger:      deps.Logger,
		timeout:     deps.RequestTimeout,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.previewMode == "" {
		s.previewMode = brochure.Portrait
	}
	if s.timeout <= 0 {
		s.timeout = defaultRequestTimeout
	}
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		logging.RequestLogger(s.logger),
		recoverer,
		middleware.Timeout(s.timeout),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, apiError{Error: "no route for " + r.URL.Path, Code: "route_not_found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method " + r.Method + " not allowed", Code: "method_not_allowed"})
	})

	r.Get("/healthz", s.healthz)
	r.Get("/preview", s.preview)

	r.Route("/api", func(api chi.Router) {
		api.Post("/suggest", s.suggestRaw)
		api.Post("/generate-brochure-pdf", s.generatePDF)

		api.Route("/brochure", func(b chi.Router) {
			b.Get("/", s.getBrochure)
			b.Put("/", s.putBrochure)
			b.Delete("/", s.resetBrochure)
			b.Post("/populate", s.populate)
			b.Get("/fields", s.listFields)
			b.Patch("/fields", s.setField)

			b.Put("/lists/{path}/{index}", s.setListItem)
			b.Post("/lists/{path}", s.appendListItem)
			b.Delete("/lists/{path}/{index}", s.removeListItem)

			b.Post("/amenities", s.addAmenity)
			b.Patch("/amenities/{id}", s.updateAmenity)
			b.Delete("/amenities/{id}", s.removeAmenity)

			b.Post("/floor-plans", s.addFloorPlan)
			b.Patch("/floor-plans/{id}", s.updateFloorPlan)
			b.Delete("/floor-plans/{id}", s.removeFloorPlan)
			b.Put("/floor-plans/{id}/features/{index}", s.setFeature)
			b.Post("/floor-plans/{id}/features", s.appendFeature)
			b.Delete("/floor-plans/{id}/features/{index}", s.removeFeature)

			b.Post("/images", s.uploadImage)
			b.Get("/plan", s.plan)
			b.Post("/suggest", s.suggestField)
			b.Post("/pdf", s.exportPDF)
		})
	})

	return r
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recoverer turns handler panics into a JSON 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logging.FromContext(r.Context()).Error("panic recovered", zap.Any("panic", rec), zap.Stack("stack"))
				writeJSON(w, http.StatusInternalServerError, apiError{
					Error:     "internal error",
					Code:      "internal",
					RequestID: middleware.GetReqID(r.Context()),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ListenConfig configures Run.
type ListenConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Run serves h until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, h http.Handler, cfg ListenConfig, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return serve(ctx, ln, h, cfg, logger)
}

func serve(ctx context.Context, ln net.Listener, h http.Handler, cfg ListenConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}
	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
