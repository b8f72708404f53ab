package netplan

import (
	"strings"
	"testing"
	"time"
)

func validPlan() Plan {
	p := Default()
	p.SSID = "Test-AP"
	p.Passphrase = "abcdefgh"
	return p
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validPlan().Validate(); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}
}

func TestValidatePassphraseLength(t *testing.T) {
	for _, pass := range []string{"", "short", "1234567", strings.Repeat("x", 64)} {
		p := validPlan()
		p.Passphrase = pass
		if err := p.Validate(); err == nil {
			t.Fatalf("passphrase %q (len %d) accepted", pass, len(pass))
		}
	}
	for _, pass := range []string{"12345678", strings.Repeat("x", 63)} {
		p := validPlan()
		p.Passphrase = pass
		if err := p.Validate(); err != nil {
			t.Fatalf("passphrase len %d rejected: %v", len(pass), err)
		}
	}
}

func TestValidateRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		ok         bool
	}{
		{"ordered", "192.168.4.2", "192.168.4.20", true},
		{"reversed", "192.168.4.20", "192.168.4.2", false},
		{"equal", "192.168.4.5", "192.168.4.5", false},
		{"start outside subnet", "192.168.5.2", "192.168.4.20", false},
		{"end outside subnet", "192.168.4.2", "10.0.0.1", false},
		{"garbage start", "not-an-ip", "192.168.4.20", false},
	}
	for _, tc := range cases {
		p := validPlan()
		p.DHCPRangeStart = tc.start
		p.DHCPRangeEnd = tc.end
		err := p.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}
}

func TestValidateAddressSyntax(t *testing.T) {
	p := validPlan()
	p.APAddress = "192.168.4.1" // missing prefix
	if err := p.Validate(); err == nil {
		t.Fatal("address without prefix accepted")
	}
	p = validPlan()
	p.APAddress = "fd00::1/64"
	if err := p.Validate(); err == nil {
		t.Fatal("IPv6 address accepted")
	}
}

func TestValidateLease(t *testing.T) {
	p := validPlan()
	p.LeaseDuration = -time.Hour
	if err := p.Validate(); err == nil {
		t.Fatal("negative lease accepted")
	}
}

func TestAPIP(t *testing.T) {
	if got := validPlan().APIP(); got != "192.168.4.1" {
		t.Fatalf("APIP = %q, want 192.168.4.1", got)
	}
}
