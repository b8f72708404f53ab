// Package systemd renders and installs the supervised unit definitions for
// the management service and the boot orchestrator.
package systemd

import (
	"fmt"
	"strings"
)

// Unit describes one systemd service. Render output is deterministic so
// re-installation overwrites with identical bytes.
type Unit struct {
	Name             string // without the .service suffix
	Description      string
	ExecStart        string
	WorkingDirectory string
	Type             string // empty means simple
	Restart          string // e.g. always
	RestartSec       int
	RemainAfterExit  bool
	After            []string
	Requires         []string
	WantedBy         string
}

func (u Unit) FileName() string { return u.Name + ".service" }

func (u Unit) Render() string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	fmt.Fprintf(&b, "Description=%s\n", u.Description)
	if len(u.After) > 0 {
		fmt.Fprintf(&b, "After=%s\n", strings.Join(u.After, " "))
	}
	if len(u.Requires) > 0 {
		fmt.Fprintf(&b, "Requires=%s\n", strings.Join(u.Requires, " "))
	}
	b.WriteString("\n[Service]\n")
	if u.Type != "" {
		fmt.Fprintf(&b, "Type=%s\n", u.Type)
	}
	fmt.Fprintf(&b, "ExecStart=%s\n", u.ExecStart)
	if u.WorkingDirectory != "" {
		fmt.Fprintf(&b, "WorkingDirectory=%s\n", u.WorkingDirectory)
	}
	if u.Restart != "" {
		fmt.Fprintf(&b, "Restart=%s\n", u.Restart)
	}
	if u.RestartSec > 0 {
		fmt.Fprintf(&b, "RestartSec=%d\n", u.RestartSec)
	}
	if u.RemainAfterExit {
		b.WriteString("RemainAfterExit=yes\n")
	}
	wantedBy := u.WantedBy
	if wantedBy == "" {
		wantedBy = "multi-user.target"
	}
	fmt.Fprintf(&b, "\n[Install]\nWantedBy=%s\n", wantedBy)
	return b.String()
}

// ManagementUnit is the always-restarting daemon, held back until the boot
// orchestrator has re-asserted the network role.
func ManagementUnit(execStart string) Unit {
	return Unit{
		Name:        "wifiboxd",
		Description: "wifibox management service",
		ExecStart:   execStart,
		Restart:     "always",
		RestartSec:  5,
		After:       []string{"wifibox-boot.service", "network.target"},
	}
}

// BootUnit runs once per boot and stays marked successful afterwards.
func BootUnit(execStart string) Unit {
	return Unit{
		Name:            "wifibox-boot",
		Description:     "wifibox boot-time network role orchestrator",
		ExecStart:       execStart,
		Type:            "oneshot",
		RemainAfterExit: true,
		After:           []string{"network.target"},
	}
}
