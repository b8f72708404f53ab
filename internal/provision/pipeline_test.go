package provision

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adamcubed/wifibox/internal/netplan"
	"github.com/adamcubed/wifibox/internal/sysport"
)

func testPlan() netplan.Plan {
	p := netplan.Default()
	p.SSID = "Test-AP"
	p.Passphrase = "abcdefgh"
	return p
}

func testPaths() Paths {
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

func TestPipelineRunsStagesInOrder(t *testing.T) {
	var order []string
	p := &Pipeline{
		Stages: []Stage{
			{Name: "one", Apply: func(context.Context, sysport.System) error { order = append(order, "one"); return nil }},
			{Name: "two", Apply: func(context.Context, sysport.System) error { order = append(order, "two"); return nil }},
			{Name: "three", Apply: func(context.Context, sysport.System) error { order = append(order, "three"); return nil }},
		},
		AbortOnFirstFailure: true,
		Log:                 zerolog.Nop(),
	}
	if err := p.Run(context.Background(), sysport.NewFake()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"one", "two", "three"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestPipelineHaltsAtFailingStage(t *testing.T) {
	boom := errors.New("boom")
	var ran []string
	p := &Pipeline{
		Stages: []Stage{
			{Name: "first", Apply: func(context.Context, sysport.System) error { ran = append(ran, "first"); return nil }},
			{Name: "broken", Apply: func(context.Context, sysport.System) error { return boom }},
			{Name: "after", Apply: func(context.Context, sysport.System) error { ran = append(ran, "after"); return nil }},
		},
		AbortOnFirstFailure: true,
		Log:                 zerolog.Nop(),
	}
	err := p.Run(context.Background(), sysport.NewFake())
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Stage != "broken" {
		t.Fatalf("failed stage = %q, want broken", se.Stage)
	}
	if !errors.Is(err, boom) {
		t.Fatal("cause not preserved")
	}
	for _, name := range ran {
		if name == "after" {
			t.Fatal("stage after the failure still ran")
		}
	}
}

func TestFullPipelineAgainstFake(t *testing.T) {
	fake := sysport.NewFake()
	fake.Files["/etc/dnsmasq.conf"] = []byte("# distro default\n")
	pipe := New(testPlan(), testPaths(), zerolog.Nop())
	if err := pipe.Run(context.Background(), fake); err != nil {
		t.Fatalf("run: %v\n%s", err, fake)
	}
	for _, path := range []string{
		"/etc/hostapd/hostapd.conf",
		"/etc/default/hostapd",
		"/etc/dnsmasq.conf",
		"/etc/dnsmasq.conf.orig",
		"/etc/dhcpcd.conf",
		"/etc/sysctl.d/90-wifibox.conf",
		"/etc/wifibox/iptables.rules",
		"/etc/wifibox/wifi-qr.png",
	} {
		if !fake.FileExists(path) {
			t.Errorf("missing %s", path)
		}
	}
	if !fake.CommandRan("sysctl -w net.ipv4.ip_forward=1") {
		t.Errorf("runtime forwarding flag not set: %s", fake)
	}
}

func TestPipelineAbortsOnUnwritableConfig(t *testing.T) {
	fake := sysport.NewFake()
	fake.FailWrites["/etc/hostapd/hostapd.conf"] = errors.New("read-only file system")
	pipe := New(testPlan(), testPaths(), zerolog.Nop())
	err := pipe.Run(context.Background(), fake)
	var se *StageError
	if !errors.As(err, &se) || se.Stage != "access-point" {
		t.Fatalf("expected failure at access-point, got %v", err)
	}
	// fail-fast: nothing later should have run
	if fake.CommandRan("iptables") || fake.CommandRan("sysctl") {
		t.Fatalf("later stages ran after failure: %s", fake)
	}
}

func TestPipelineIsIdempotent(t *testing.T) {
	fake := sysport.NewFake()
	origDefault := []byte("# distro default\n")
	fake.Files["/etc/dnsmasq.conf"] = origDefault
	pipe := New(testPlan(), testPaths(), zerolog.Nop())

	if err := pipe.Run(context.Background(), fake); err != nil {
		t.Fatalf("first run: %v", err)
	}
	snapshot := map[string][]byte{}
	for path, b := range fake.Files {
		snapshot[path] = append([]byte(nil), b...)
	}

	if err := pipe.Run(context.Background(), fake); err != nil {
		t.Fatalf("second run: %v", err)
	}
	for path, before := range snapshot {
		after, _ := fake.ReadFile(path)
		if string(before) != string(after) {
			t.Errorf("%s changed on re-run", path)
		}
	}
	// Backup must still be the distro default, not our rendered config.
	backup, _ := fake.ReadFile("/etc/dnsmasq.conf.orig")
	if string(backup) != string(origDefault) {
		t.Errorf("backup overwritten on re-run: %q", backup)
	}
}

func TestPipelineContextPlumbing(t *testing.T) {
	// Stages receive the caller's context; a pre-cancelled one should reach
	// the stage untouched.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var got context.Context
	p := &Pipeline{
		Stages: []Stage{{Name: "probe", Apply: func(c context.Context, _ sysport.System) error {
			got = c
			return nil
		}}},
		AbortOnFirstFailure: true,
		Log:                 zerolog.Nop(),
	}
	_ = p.Run(ctx, sysport.NewFake())
	if got == nil || got.Err() == nil {
		t.Fatal("stage did not receive the cancelled context")
	}
}
