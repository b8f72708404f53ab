package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/adamcubed/wifibox/internal/sysport"
)

const forwardingConf = "net.ipv4.ip_forward=1\n"

// forwardingStage persists the kernel forwarding flag and also applies it at
// runtime; the sysctl.d file alone only takes effect at the next boot.
func forwardingStage(paths Paths) Stage {
	return Stage{
		Name: "ip-forwarding",
		Apply: func(ctx context.Context, sys sysport.System) error {
			if err := sys.WriteFile(paths.SysctlConf, []byte(forwardingConf), 0o644); err != nil {
				return fmt.Errorf("persist forwarding flag: %w", err)
			}
			if res, err := sys.Run(ctx, 10*time.Second, "sysctl", "-w", "net.ipv4.ip_forward=1"); err != nil {
				return fmt.Errorf("enable forwarding: %w (%s)", err, res.Stderr)
			}
			return nil
		},
	}
}
