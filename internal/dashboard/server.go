// Package dashboard serves the portfolio web dashboard and its JSON API.
package dashboard

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/portfolio/internal/metrics"
	"github.com/zulandar/portfolio/internal/portfolio"
	"go.uber.org/zap"
)

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	Service *portfolio.Service
	Port    int
	Out     io.Writer
	Logger  *zap.Logger
	// Refresh is how often the SSE stream recomputes the open-gap set.
	Refresh time.Duration
}

func (o *StartOpts) applyDefaults() {
	if o.Port <= 0 {
		o.Port = 8080
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Refresh <= 0 {
		o.Refresh = 5 * time.Second
	}
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Service == nil {
		return fmt.Errorf("dashboard: service is required")
	}
	opts.applyDefaults()

	gin.SetMode(gin.ReleaseMode)
	router, err := newRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			opts.Logger.Warn("dashboard shutdown", zap.Error(err))
		}
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard running at http://localhost:%d\n", opts.Port)
	}
	opts.Logger.Info("dashboard listening", zap.Int("port", opts.Port))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// newRouter builds the gin engine with templates, middleware and routes.
func newRouter(opts StartOpts) (*gin.Engine, error) {
	opts.applyDefaults()
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	registerRoutes(router, &handlers{
		svc:     opts.Service,
		log:     opts.Logger,
		refresh: opts.Refresh,
	})
	return router, nil
}

var templateFuncs = template.FuncMap{
	"date": func(t *time.Time) string {
		if t == nil {
			return "—"
		}
		return t.Format("02/01/2006")
	},
}

// parseTemplates loads the embedded HTML templates.
func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
