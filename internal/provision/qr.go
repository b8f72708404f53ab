package provision

import (
	"context"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/sysport"
)

// joinQRStage renders a scannable WIFI: QR code for the new network. This is
// the only moment the plaintext passphrase is available (the hostapd config
// stores a derived PSK), so the image is produced here rather than by the
// management service.
func joinQRStage(plan netplan.Plan, paths Paths) Stage {
	return Stage{
		Name: "join-qr",
		Apply: func(ctx context.Context, sys sysport.System) error {
			payload := fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;;", qrEscape(plan.SSID), qrEscape(plan.Passphrase))
			png, err := qrcode.Encode(payload, qrcode.Medium, 512)
			if err != nil {
				return fmt.Errorf("encode join QR: %w", err)
			}
			if err := sys.WriteFile(paths.JoinQR, png, 0o644); err != nil {
				return fmt.Errorf("write join QR: %w", err)
			}
			return nil
		},
	}
}

// qrEscape escapes the characters the WIFI: URI scheme reserves.
func qrEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `:`, `\:`, `"`, `\"`)
	return r.Replace(s)
}
