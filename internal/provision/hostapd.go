package provision

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/sysport"
)

// renderHostapd emits the access-point daemon configuration. The passphrase
// is rendered as a pre-derived wpa_psk so it never lands on disk in
// plaintext; hostapd accepts either form.
func renderHostapd(plan netplan.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "interface=%s\n", plan.WirelessInterface)
	b.WriteString("driver=nl80211\n")
	fmt.Fprintf(&b, "ssid=%s\n", plan.SSID)
	b.WriteString("hw_mode=g\n")
	b.WriteString("channel=7\n")
	b.WriteString("wmm_enabled=0\n")
	b.WriteString("macaddr_acl=0\n")
	b.WriteString("auth_algs=1\n")
	b.WriteString("ignore_broadcast_ssid=0\n")
	b.WriteString("wpa=2\n")
	fmt.Fprintf(&b, "wpa_psk=%s\n", wpaPSK(plan.SSID, plan.Passphrase))
	b.WriteString("wpa_key_mgmt=WPA-PSK\n")
	b.WriteString("rsn_pairwise=CCMP\n")
	return b.String()
}

// wpaPSK derives the 256-bit WPA2 pre-shared key per IEEE 802.11i:
// PBKDF2-SHA1 over the passphrase with the SSID as salt, 4096 rounds.
func wpaPSK(ssid, passphrase string) string {
	key := pbkdf2.Key([]byte(passphrase), []byte(ssid), 4096, 32, sha1.New)
	return hex.EncodeToString(key)
}

const daemonConfLine = `DAEMON_CONF="%s"`

func accessPointStage(plan netplan.Plan, paths Paths) Stage {
	return Stage{
		Name: "access-point",
		Apply: func(ctx context.Context, sys sysport.System) error {
			if err := sys.WriteFile(paths.HostapdConf, []byte(renderHostapd(plan)), 0o600); err != nil {
				return fmt.Errorf("write hostapd config: %w", err)
			}
			// Point the init default at our config. Rewritten wholesale so a
			// re-run cannot accumulate duplicate lines.
			line := fmt.Sprintf(daemonConfLine, paths.HostapdConf)
			existing, _ := sys.ReadFile(paths.HostapdDefault)
			if strings.Contains(string(existing), line) {
				return nil
			}
			if err := sys.WriteFile(paths.HostapdDefault, []byte(line+"\n"), 0o644); err != nil {
				return fmt.Errorf("write hostapd defaults: %w", err)
			}
			return nil
		},
	}
}
