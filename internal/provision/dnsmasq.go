package provision

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/sysport"
)

// renderDnsmasq emits the DHCP server configuration scoped to the wireless
// interface.
func renderDnsmasq(plan netplan.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "interface=%s\n", plan.WirelessInterface)
	b.WriteString("domain-needed\n")
	b.WriteString("bogus-priv\n")
	fmt.Fprintf(&b, "dhcp-range=%s,%s,%s,%s\n",
		plan.DHCPRangeStart, plan.DHCPRangeEnd, plan.Netmask(), leaseString(plan.LeaseDuration))
	return b.String()
}

// leaseString formats a lease duration the way dnsmasq expects: whole hours
// when possible, minutes otherwise.
func leaseString(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}
	return fmt.Sprintf("%dm", int(d/time.Minute))
}

func dhcpStage(plan netplan.Plan, paths Paths) Stage {
	return Stage{
		Name: "dhcp-server",
		Apply: func(ctx context.Context, sys sysport.System) error {
			// Preserve the distribution default exactly once; a second run
			// must not clobber the backup with our own config.
			if !sys.FileExists(paths.DnsmasqBackup) {
				if orig, err := sys.ReadFile(paths.DnsmasqConf); err == nil {
					if err := sys.WriteFile(paths.DnsmasqBackup, orig, 0o644); err != nil {
						return fmt.Errorf("back up dnsmasq config: %w", err)
					}
				}
			}
			if err := sys.WriteFile(paths.DnsmasqConf, []byte(renderDnsmasq(plan)), 0o644); err != nil {
				return fmt.Errorf("write dnsmasq config: %w", err)
			}
			return nil
		},
	}
}
