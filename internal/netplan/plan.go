package netplan

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"
)

// Plan describes the network role of the device: one wireless interface
// serving as an access point with a DHCP pool, NATed out through the uplink.
// A Plan is built once from operator input and never mutated afterwards; it
// is persisted only as the rendered configuration files.
type Plan struct {
	SSID              string
	Passphrase        string
	APAddress         string // IPv4 CIDR, e.g. 192.168.4.1/24
	DHCPRangeStart    string
	DHCPRangeEnd      string
	LeaseDuration     time.Duration
	WirelessInterface string
	UplinkInterface   string
}

// Default returns the documented defaults. SSID and passphrase are left for
// the operator to fill in via flags or prompts.
func Default() Plan {
	return Plan{
		SSID:              "WifiBox",
		APAddress:         "192.168.4.1/24",
		DHCPRangeStart:    "192.168.4.2",
		DHCPRangeEnd:      "192.168.4.20",
		LeaseDuration:     24 * time.Hour,
		WirelessInterface: "wlan0",
		UplinkInterface:   "eth0",
	}
}

// Validate checks the WPA2 passphrase constraint, address syntax, and that
// the DHCP range is ordered and inside the AP subnet.
func (p Plan) Validate() error {
	if p.SSID == "" || len(p.SSID) > 32 {
		return fmt.Errorf("ssid must be 1-32 bytes, got %d", len(p.SSID))
	}
	if n := len(p.Passphrase); n < 8 || n > 63 {
		return fmt.Errorf("passphrase must be 8-63 characters, got %d", n)
	}
	if p.WirelessInterface == "" || p.UplinkInterface == "" {
		return fmt.Errorf("both wireless and uplink interface names are required")
	}
	apIP, subnet, err := net.ParseCIDR(p.APAddress)
	if err != nil {
		return fmt.Errorf("ap address: %w", err)
	}
	if apIP.To4() == nil {
		return fmt.Errorf("ap address %s is not IPv4", p.APAddress)
	}
	start := net.ParseIP(p.DHCPRangeStart)
	end := net.ParseIP(p.DHCPRangeEnd)
	if start == nil || start.To4() == nil {
		return fmt.Errorf("dhcp range start %q is not a valid IPv4 address", p.DHCPRangeStart)
	}
	if end == nil || end.To4() == nil {
		return fmt.Errorf("dhcp range end %q is not a valid IPv4 address", p.DHCPRangeEnd)
	}
	if !subnet.Contains(start) || !subnet.Contains(end) {
		return fmt.Errorf("dhcp range %s-%s is not inside %s", p.DHCPRangeStart, p.DHCPRangeEnd, subnet)
	}
	if ipv4ToUint(start) >= ipv4ToUint(end) {
		return fmt.Errorf("dhcp range start %s must be below end %s", p.DHCPRangeStart, p.DHCPRangeEnd)
	}
	if p.LeaseDuration <= 0 {
		return fmt.Errorf("lease duration must be positive")
	}
	return nil
}

// APIP returns the AP address without its prefix length.
func (p Plan) APIP() string {
	ip, _, err := net.ParseCIDR(p.APAddress)
	if err != nil {
		return ""
	}
	return ip.String()
}

// Netmask returns the dotted-quad mask of the AP subnet, e.g. 255.255.255.0.
func (p Plan) Netmask() string {
	_, subnet, err := net.ParseCIDR(p.APAddress)
	if err != nil {
		return ""
	}
	m := subnet.Mask
	return fmt.Sprintf("%d.%d.%d.%d", m[0], m[1], m[2], m[3])
}

func ipv4ToUint(ip net.IP) uint32 {
	return binary.BigEndian.Uint32(ip.To4())
}
