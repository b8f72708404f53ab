package provision

// Paths collects every file the pipeline touches, so tests can point the
// stages at a temp tree and the boot orchestrator can find the rules file.
type Paths struct {
	HostapdConf    string
	HostapdDefault string
	DnsmasqConf    string
	DnsmasqBackup  string
	DhcpcdConf     string
	SysctlConf     string
	RulesFile      string
	JoinQR         string
}

func DefaultPaths() Paths {
	return Paths{
		HostapdConf:    "/etc/hostapd/hostapd.conf",
		HostapdDefault: "/etc/default/hostapd",
		DnsmasqConf:    "/etc/dnsmasq.conf",
		DnsmasqBackup:  "/etc/dnsmasq.conf.orig",
		DhcpcdConf:     "/etc/dhcpcd.conf",
		SysctlConf:     "/etc/sysctl.d/90-wifibox.conf",
		RulesFile:      "/etc/wifibox/iptables.rules",
		JoinQR:         "/etc/wifibox/wifi-qr.png",
	}
}
