package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/sysport"
)

const staticBlockMarker = "# wifibox: static access point address"

// staticAddressStage appends a marker-delimited block to dhcpcd.conf giving
// the wireless interface its fixed AP address and disabling the
// wpa_supplicant hook, since the radio no longer acts as a client. The
// append is guarded by the marker so a re-run never duplicates the block.
func staticAddressStage(plan netplan.Plan, paths Paths) Stage {
	return Stage{
		Name: "static-address",
		Apply: func(ctx context.Context, sys sysport.System) error {
			existing, _ := sys.ReadFile(paths.DhcpcdConf)
			if strings.Contains(string(existing), staticBlockMarker) {
				return nil
			}
			var b strings.Builder
			b.Write(existing)
			if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
				b.WriteString("\n")
			}
			b.WriteString("\n" + staticBlockMarker + "\n")
			fmt.Fprintf(&b, "interface %s\n", plan.WirelessInterface)
			fmt.Fprintf(&b, "static ip_address=%s\n", plan.APAddress)
			b.WriteString("nohook wpa_supplicant\n")
			if err := sys.WriteFile(paths.DhcpcdConf, []byte(b.String()), 0o644); err != nil {
				return fmt.Errorf("write dhcpcd config: %w", err)
			}
			return nil
		},
	}
}
