package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CLIConfig is persisted at ~/.floodgate/config.yaml.
type CLIConfig struct {
	Addr          string `yaml:"addr"`
	Session       string `yaml:"session,omitempty"`
	TLSSkipVerify bool   `yaml:"tls_skip_verify,omitempty"`
}

var cfg = CLIConfig{
	Addr: "http://127.0.0.1:3000",
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".floodgate", "config.yaml")
}

func loadConfig() {
	path := configPath()
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// A broken config file is ignored rather than fatal.
	_ = yaml.Unmarshal(data, &cfg)
}

func saveConfig() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
