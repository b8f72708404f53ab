// wifibox-setup provisions a single-board Linux device as a WiFi access
// point with NAT to its wired uplink, then installs the boot and management
// services. Run it once as root; afterwards wifibox-boot re-establishes the
// role on every startup.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/provision"
	"github.com/adamcubed/wifibox/internal/setup"
	"github.com/adamcubed/wifibox/internal/sysport"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		color.Red("Setup failed: %v", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	plan := netplan.Default()
	var (
		unitDir = "/etc/systemd/system"
		execDir = "/usr/local/bin"
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:     "wifibox-setup",
		Short:   "Turn this device into a WiFi access point",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !dryRun && os.Geteuid() != 0 {
				return fmt.Errorf("must run as root (use --dry-run to preview)")
			}

			color.Cyan("wifibox setup %s", version)
			fmt.Println()

			if !cmd.Flags().Changed("ssid") {
				ssid, err := setup.PromptSSID(plan.SSID)
				if err != nil {
					return err
				}
				plan.SSID = ssid
			}
			if !cmd.Flags().Changed("passphrase") {
				pass, err := setup.PromptPassphrase()
				if err != nil {
					return err
				}
				plan.Passphrase = pass
			}

			log := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
			var sys sysport.System = sysport.Host{}
			if dryRun {
				fake := sysport.NewFake()
				sys = fake
				defer func() {
					fmt.Println("\nDry run; files that would be written:")
					for path := range fake.Files {
						fmt.Println("  " + path)
					}
				}()
			}

			s := setup.New(setup.Options{
				Plan:     plan,
				Paths:    provision.DefaultPaths(),
				UnitDir:  unitDir,
				ExecDir:  execDir,
				Progress: !dryRun,
			}, sys, log)
			return s.Run(context.Background())
		},
	}

	f := cmd.Flags()
	f.StringVar(&plan.SSID, "ssid", plan.SSID, "access point name")
	f.StringVar(&plan.Passphrase, "passphrase", "", "WPA2 passphrase (8-63 characters; prompted if omitted)")
	f.StringVar(&plan.APAddress, "ap-address", plan.APAddress, "access point address in CIDR form")
	f.StringVar(&plan.DHCPRangeStart, "dhcp-start", plan.DHCPRangeStart, "first DHCP lease address")
	f.StringVar(&plan.DHCPRangeEnd, "dhcp-end", plan.DHCPRangeEnd, "last DHCP lease address")
	f.DurationVar(&plan.LeaseDuration, "lease", plan.LeaseDuration, "DHCP lease duration")
	f.StringVar(&plan.WirelessInterface, "wifi-interface", plan.WirelessInterface, "wireless interface to run the AP on")
	f.StringVar(&plan.UplinkInterface, "uplink-interface", plan.UplinkInterface, "interface carrying the internet uplink")
	f.StringVar(&unitDir, "unit-dir", unitDir, "systemd unit directory")
	f.StringVar(&execDir, "exec-dir", execDir, "directory holding the wifibox binaries")
	f.BoolVar(&dryRun, "dry-run", false, "record changes without touching the host")
	return cmd
}
