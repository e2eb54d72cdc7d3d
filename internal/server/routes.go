package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shootingrange/internal/config"
	"shootingrange/internal/events"
	"shootingrange/internal/metrics"
	"shootingrange/internal/utility"
	"shootingrange/internal/wshub"
)

//go:embed templates/*.html
var templatesFS embed.FS

func Run() error {
	appCfg := config.Load()

	fill, err := utility.ParseHexColor(appCfg.FillColor)
	if err != nil {
		return fmt.Errorf("parsing FILL_COLOR: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &Server{
		Hub:       wshub.NewHub(),
		Events:    events.NewBus(1000),
		Metrics:   metrics.New(reg),
		Registry:  reg,
		Tmpl:      template.Must(template.ParseFS(templatesFS, "templates/*.html")),
		FrameRate: appCfg.FrameRate,
		Fill:      fill,
	}
	go srv.Metrics.Consume(ctx, srv.Events)

	httpServer := &http.Server{
		Addr:              "0.0.0.0:" + appCfg.Port,
		Handler:           NewRouter(srv),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[Server] Shutdown error: %v\n", err)
		}
	}()

	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewRouter wires every route of the web host onto a chi router.
func NewRouter(srv *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", srv.handleHome)
	r.Get("/health", srv.handleHealth)
	r.Get("/ws", srv.handleWS)
	r.Handle("/metrics", promhttp.HandlerFor(srv.Registry, promhttp.HandlerOpts{}))
	return r
}
