package provision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/sysport"
)

// natRules returns the three rules in the order they must be installed:
// masquerade on the uplink first, then the two forwarding accepts. Each entry
// omits the leading "iptables" and the -A/-C verb.
func natRules(plan netplan.Plan) [][]string {
	return [][]string{
		{"-t", "nat", "POSTROUTING", "-o", plan.UplinkInterface, "-j", "MASQUERADE"},
		{"FORWARD", "-i", plan.UplinkInterface, "-o", plan.WirelessInterface,
			"-m", "state", "--state", "RELATED,ESTABLISHED", "-j", "ACCEPT"},
		{"FORWARD", "-i", plan.WirelessInterface, "-o", plan.UplinkInterface, "-j", "ACCEPT"},
	}
}

// natStage installs the masquerade and forwarding rules, checking each with
// -C before appending so a re-run never duplicates them, then persists the
// full ruleset for replay at boot: the in-memory tables do not survive a
// reboot.
func natStage(plan netplan.Plan, paths Paths) Stage {
	return Stage{
		Name: "nat",
		Apply: func(ctx context.Context, sys sysport.System) error {
			for _, rule := range natRules(plan) {
				check := insertVerb(rule, "-C")
				if _, err := sys.Run(ctx, 10*time.Second, "iptables", check...); err == nil {
					continue // already installed
				}
				add := insertVerb(rule, "-A")
				if res, err := sys.Run(ctx, 10*time.Second, "iptables", add...); err != nil {
					return fmt.Errorf("install rule %q: %w (%s)", strings.Join(add, " "), err, res.Stderr)
				}
			}
			res, err := sys.Run(ctx, 10*time.Second, "iptables-save")
			if err != nil {
				return fmt.Errorf("dump ruleset: %w", err)
			}
			if err := sys.WriteFile(paths.RulesFile, res.Stdout, 0o600); err != nil {
				return fmt.Errorf("persist ruleset: %w", err)
			}
			return nil
		},
	}
}

// insertVerb places the -A/-C verb after a possible "-t <table>" prefix,
// which iptables requires to come first.
func insertVerb(rule []string, verb string) []string {
	out := make([]string, 0, len(rule)+1)
	if len(rule) >= 2 && rule[0] == "-t" {
		out = append(out, rule[0], rule[1], verb)
		out = append(out, rule[2:]...)
		return out
	}
	out = append(out, verb)
	out = append(out, rule...)
	return out
}
