// Package provision turns a netplan.Plan into host configuration: hostapd,
// dnsmasq, a static interface address, IP forwarding, and NAT rules. Stages
// run strictly in order and are idempotent; a re-run produces byte-identical
// output and never duplicates a side effect.
package provision

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/sysport"
)

// Stage is one ordered provisioning step.
type Stage struct {
	Name  string
	Apply func(ctx context.Context, sys sysport.System) error
}

// StageError names the stage at which the pipeline halted.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// Pipeline runs stages sequentially. AbortOnFirstFailure is the install-time
// policy: a failed stage stops everything and partially-applied state is left
// in place for inspection. Rolling back network configuration on a device the
// operator may be remotely connected to is riskier than stopping.
type Pipeline struct {
	Stages              []Stage
	AbortOnFirstFailure bool
	Log                 zerolog.Logger
	// OnStage is called before each stage runs; the setup CLI hooks its
	// progress bar here.
	OnStage func(name string)
}

// New builds the standard pipeline for a plan.
func New(plan netplan.Plan, paths Paths, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Stages: []Stage{
			accessPointStage(plan, paths),
			dhcpStage(plan, paths),
			staticAddressStage(plan, paths),
			forwardingStage(paths),
			natStage(plan, paths),
			joinQRStage(plan, paths),
		},
		AbortOnFirstFailure: true,
		Log:                 log,
	}
}

func (p *Pipeline) Run(ctx context.Context, sys sysport.System) error {
	for _, st := range p.Stages {
		if p.OnStage != nil {
			p.OnStage(st.Name)
		}
		p.Log.Info().Str("stage", st.Name).Msg("applying")
		if err := st.Apply(ctx, sys); err != nil {
			p.Log.Error().Str("stage", st.Name).Err(err).Msg("stage failed")
			if p.AbortOnFirstFailure {
				return &StageError{Stage: st.Name, Err: err}
			}
			continue
		}
		p.Log.Info().Str("stage", st.Name).Msg("done")
	}
	return nil
}
