// Package server is the management HTTP service: clock sync, filesystem
// browse and download, and the configuration-file store.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/adamcubed/wifibox/internal/clock"
	"github.com/adamcubed/wifibox/internal/config"
	"github.com/adamcubed/wifibox/internal/confstore"
	"github.com/adamcubed/wifibox/internal/fsbrowse"
)

type Server struct {
	cfg     config.Config
	log     zerolog.Logger
	browser fsbrowse.Browser
	store   confstore.Store
	clock   clock.Setter
}

func New(cfg config.Config, log zerolog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		browser: fsbrowse.Browser{Root: cfg.BrowseRoot},
		store:   confstore.New(cfg.ConfigStoreDir),
		clock:   clock.SystemSetter{HwclockTimeout: 10 * time.Second},
	}
}

// WithClock swaps the clock setter; tests use this to avoid needing root.
func (s *Server) WithClock(c clock.Setter) *Server {
	s.clock = c
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Use(countRequests)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	r.Use(c.Handler)

	r.Get("/", s.handleIndex)
	r.Post("/sync-time", s.handleSyncTime)
	r.Get("/files", s.handleListFiles)
	r.Get("/download", s.handleDownload)
	r.Get("/config", s.handleListConfigs)
	r.Post("/config/save", s.handleSaveConfig)
	r.Post("/config/create", s.handleCreateConfig)
	r.Get("/system", s.handleSystemStatus)
	r.Handle("/metrics", promhttp.Handler())
	return r
}
