// Package setup drives the one-shot install: provision the network role,
// then register the supervised units. It is strictly sequential and
// fail-fast; a failed stage leaves earlier state in place for the operator
// to inspect rather than attempting a rollback over a connection that may
// itself depend on the network being reconfigured.
package setup

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/provision"
	"github.com/adamcubed/wifibox/internal/systemd"
	"github.com/adamcubed/wifibox/internal/sysport"
)

type Options struct {
	Plan    netplan.Plan
	Paths   provision.Paths
	UnitDir string // normally /etc/systemd/system
	ExecDir string // where the wifibox binaries live, normally /usr/local/bin
	// Progress enables the interactive progress bar; off in tests.
	Progress bool
}

type Setup struct {
	opts Options
	log  zerolog.Logger
	sys  sysport.System
}

func New(opts Options, sys sysport.System, log zerolog.Logger) *Setup {
	if opts.UnitDir == "" {
		opts.UnitDir = "/etc/systemd/system"
	}
	if opts.ExecDir == "" {
		opts.ExecDir = "/usr/local/bin"
	}
	return &Setup{opts: opts, log: log, sys: sys}
}

func (s *Setup) Run(ctx context.Context) error {
	if err := s.opts.Plan.Validate(); err != nil {
		return fmt.Errorf("invalid network plan: %w", err)
	}

	pipe := provision.New(s.opts.Plan, s.opts.Paths, s.log)
	if s.opts.Progress {
		bar := progressbar.Default(int64(len(pipe.Stages)), "Provisioning")
		pipe.OnStage = func(name string) {
			bar.Describe(name)
			_ = bar.Add(1)
		}
	}
	if err := pipe.Run(ctx, s.sys); err != nil {
		return err
	}

	inst := systemd.Installer{Dir: s.opts.UnitDir, Sys: s.sys}
	units := []systemd.Unit{
		systemd.BootUnit(s.opts.ExecDir + "/wifibox-boot"),
		systemd.ManagementUnit(s.opts.ExecDir + "/wifiboxd"),
	}
	for _, u := range units {
		if err := inst.Install(ctx, u); err != nil {
			return fmt.Errorf("install service units: %w", err)
		}
	}
	if err := inst.Reload(ctx); err != nil {
		return err
	}

	color.Green("\n✓ Access point %q provisioned.", s.opts.Plan.SSID)
	fmt.Printf("  join QR code: %s\n", s.opts.Paths.JoinQR)
	fmt.Println("  reboot to bring up the access point, then browse to port 5000")
	return nil
}
