// Package config loads the shared configuration for wifiboxd and
// wifibox-boot: an optional YAML file overridden by WIFIBOX_* environment
// variables.
package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "/etc/wifibox/config.yaml"

type Config struct {
	Port              int    `yaml:"port"`
	BrowseRoot        string `yaml:"browse_root"`
	ConfigStoreDir    string `yaml:"config_store_dir"`
	RulesFile         string `yaml:"rules_file"`
	WirelessInterface string `yaml:"wireless_interface"`
	ClockCheckpoint   string `yaml:"clock_checkpoint"`
	LogLevel          string `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		Port:              5000,
		BrowseRoot:        "/",
		ConfigStoreDir:    "/etc/wifibox/configs",
		RulesFile:         "/etc/wifibox/iptables.rules",
		WirelessInterface: "wlan0",
		ClockCheckpoint:   "/var/lib/wifibox/clock-checkpoint",
		LogLevel:          "info",
	}
}

// Load reads path (missing file is fine, defaults apply) and then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		path = DefaultPath
	}
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WIFIBOX_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			cfg.Port = p
		}
	}
	if v := os.Getenv("WIFIBOX_BROWSE_ROOT"); v != "" {
		cfg.BrowseRoot = v
	}
	if v := os.Getenv("WIFIBOX_CONFIG_STORE"); v != "" {
		cfg.ConfigStoreDir = v
	}
	if v := os.Getenv("WIFIBOX_RULES_FILE"); v != "" {
		cfg.RulesFile = v
	}
	if v := os.Getenv("WIFIBOX_WIFI_INTERFACE"); v != "" {
		cfg.WirelessInterface = v
	}
	if v := os.Getenv("WIFIBOX_LOG"); v != "" {
		cfg.LogLevel = v
	}
}

// Level parses the configured log level, defaulting to info.
func (c Config) Level() zerolog.Level {
	if l, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		return l
	}
	return zerolog.InfoLevel
}
