// wifiboxd is the management service that runs on the access point: clock
// sync for RTC-less boards, filesystem browsing with archive downloads, and
// the configuration file store. It listens on every interface so devices
// joined to the AP can reach it.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/adamcubed/wifibox/internal/clock"
	"github.com/adamcubed/wifibox/internal/config"
	"github.com/adamcubed/wifibox/internal/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("WIFIBOX_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := zerolog.New(os.Stdout).Level(cfg.Level()).With().Timestamp().Str("service", "wifiboxd").Logger()

	cr := cron.New()
	cp := clock.Checkpointer{Path: cfg.ClockCheckpoint, Log: log}
	if err := cp.Schedule(cr); err != nil {
		log.Warn().Err(err).Msg("clock checkpoint not scheduled")
	}
	cr.Start()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.New(cfg, log).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Info().Int("port", cfg.Port).Str("browse_root", cfg.BrowseRoot).Msg("wifiboxd listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
