// wifibox-boot runs once per boot, before wifiboxd, and re-establishes the
// access-point role: wait for the radio, step the clock forward from the
// last checkpoint, bounce the network daemons in dependency order, and
// replay the forwarding flag and firewall rules the kernel forgot.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adamcubed/wifibox/internal/boot"
	"github.com/adamcubed/wifibox/internal/clock"
	"github.com/adamcubed/wifibox/internal/config"
	"github.com/adamcubed/wifibox/internal/sysport"
)

func main() {
	cfg, err := config.Load(os.Getenv("WIFIBOX_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	// A run ID ties together the steps of one boot attempt in the journal.
	log := zerolog.New(os.Stdout).Level(cfg.Level()).With().
		Timestamp().
		Str("service", "wifibox-boot").
		Str("run", uuid.NewString()).
		Logger()

	o := &boot.Orchestrator{
		Sys:               sysport.Host{},
		Log:               log,
		WirelessInterface: cfg.WirelessInterface,
		RulesFile:         cfg.RulesFile,
		ClockCheckpoint:   cfg.ClockCheckpoint,
		Clock:             clock.SystemSetter{},
	}
	report := o.Run(context.Background())
	if report.Failed() {
		log.Error().Msg("boot sequence failed")
		os.Exit(1)
	}
	log.Info().Msg("boot sequence complete")
}
