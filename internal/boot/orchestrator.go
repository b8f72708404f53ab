// Package boot re-establishes the access-point role once per boot. The
// radio driver may come up after early boot, dnsmasq and hostapd must be
// bounced in dependency order once it does, and the runtime forwarding flag
// and firewall rules are not persisted by the kernel across reboots.
package boot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adamcubed/wifibox/internal/clock"
	"github.com/adamcubed/wifibox/internal/sysport"
)

type State string

const (
	StateWaitingForInterface  State = "waiting-for-interface"
	StateRestoringClock       State = "restoring-clock"
	StateRestartingAddressing State = "restarting-addressing"
	StateRestartingAP         State = "restarting-ap"
	StateRestartingDHCP       State = "restarting-dhcp"
	StateReassertingForward   State = "reasserting-forwarding"
	StateReplayingFirewall    State = "replaying-firewall"
	StateDone                 State = "done"
)

// StepResult records one transition of the state machine so the ordering
// contract is observable from tests and logs.
type StepResult struct {
	State   State
	Err     error
	Skipped bool
}

type Report struct {
	Steps []StepResult
}

// Failed reports whether a step that later steps depend on failed. The
// interface wait gates every service restart, and the addressing restart
// gates the AP and DHCP daemons that serve on that address. Other failures
// are logged but do not fail the run.
func (r Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil && (s.State == StateWaitingForInterface || s.State == StateRestartingAddressing) {
			return true
		}
	}
	return false
}

func (r Report) result(state State) *StepResult {
	for i := range r.Steps {
		if r.Steps[i].State == state {
			return &r.Steps[i]
		}
	}
	return nil
}

type Orchestrator struct {
	Sys               sysport.System
	Log               zerolog.Logger
	WirelessInterface string
	RulesFile         string
	ClockCheckpoint   string
	Clock             clock.Setter // nil disables the clock-restore step
	PollInterval      time.Duration
	WaitTimeout       time.Duration
}

// Run drives the machine to Done. Steps are best-effort: a failure is
// recorded and independent later steps still run, so one wedged daemon does
// not leave forwarding or the firewall unconfigured.
func (o *Orchestrator) Run(ctx context.Context) Report {
	var report Report
	record := func(state State, skipped bool, err error) {
		report.Steps = append(report.Steps, StepResult{State: state, Err: err, Skipped: skipped})
		ev := o.Log.Info()
		if err != nil {
			ev = o.Log.Error().Err(err)
		}
		ev.Str("state", string(state)).Bool("skipped", skipped).Msg("boot step")
	}

	ifaceErr := o.waitForInterface(ctx)
	record(StateWaitingForInterface, false, ifaceErr)

	record(StateRestoringClock, o.Clock == nil, o.restoreClock(ctx))

	// Service restarts are pointless without the radio; skip rather than
	// thrash systemd.
	if ifaceErr != nil {
		record(StateRestartingAddressing, true, nil)
		record(StateRestartingAP, true, nil)
		record(StateRestartingDHCP, true, nil)
	} else {
		addrErr := o.restartService(ctx, "dhcpcd")
		record(StateRestartingAddressing, false, addrErr)
		record(StateRestartingAP, false, o.restartService(ctx, "hostapd"))
		record(StateRestartingDHCP, false, o.restartService(ctx, "dnsmasq"))
	}

	record(StateReassertingForward, false, o.reassertForwarding(ctx))
	record(StateReplayingFirewall, false, o.replayFirewall(ctx))
	record(StateDone, false, nil)
	return report
}

// waitForInterface polls for the wireless device with a bounded timeout
// instead of the fixed sleeps this kind of script usually carries.
func (o *Orchestrator) waitForInterface(ctx context.Context) error {
	interval := o.PollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	timeout := o.WaitTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	deadline := time.Now().Add(timeout)
	for {
		if o.Sys.InterfaceExists(o.WirelessInterface) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("interface %s not present after %s", o.WirelessInterface, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// restoreClock steps the system clock forward to the last daemon checkpoint.
// RTC-less boards boot in 1970; without this, TLS and log timestamps are
// nonsense until an operator syncs time by hand.
func (o *Orchestrator) restoreClock(ctx context.Context) error {
	if o.Clock == nil || o.ClockCheckpoint == "" {
		return nil
	}
	b, err := o.Sys.ReadFile(o.ClockCheckpoint)
	if err != nil {
		return nil // no checkpoint yet; nothing to restore
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return fmt.Errorf("parse clock checkpoint: %w", err)
	}
	checkpoint := time.Unix(sec, 0)
	if !checkpoint.After(time.Now()) {
		return nil // clock is already ahead; never step backwards
	}
	return o.Clock.Set(ctx, checkpoint)
}

// restartService restarts one unit and verifies it actually came up before
// the machine advances.
func (o *Orchestrator) restartService(ctx context.Context, name string) error {
	if res, err := o.Sys.Run(ctx, 30*time.Second, "systemctl", "restart", name); err != nil {
		return fmt.Errorf("restart %s: %w (%s)", name, err, res.Stderr)
	}
	if res, err := o.Sys.Run(ctx, 10*time.Second, "systemctl", "is-active", name); err != nil {
		return fmt.Errorf("%s not active after restart (%s)", name, res.Stdout)
	}
	return nil
}

func (o *Orchestrator) reassertForwarding(ctx context.Context) error {
	if res, err := o.Sys.Run(ctx, 10*time.Second, "sysctl", "-w", "net.ipv4.ip_forward=1"); err != nil {
		return fmt.Errorf("reassert forwarding: %w (%s)", err, res.Stderr)
	}
	return nil
}

func (o *Orchestrator) replayFirewall(ctx context.Context) error {
	rules, err := o.Sys.ReadFile(o.RulesFile)
	if err != nil {
		return fmt.Errorf("read rules file %s: %w", o.RulesFile, err)
	}
	if res, err := o.Sys.RunInput(ctx, 30*time.Second, rules, "iptables-restore"); err != nil {
		return fmt.Errorf("replay firewall rules: %w (%s)", err, res.Stderr)
	}
	return nil
}
