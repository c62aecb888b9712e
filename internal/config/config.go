package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/glucolink/facectl/internal/protocol"
)

type FaceConfig struct {
	Name        string   `toml:"name"`
	PhoneURL    string   `toml:"phone_url"`
	Revision    string   `toml:"revision"`
	GraphHours  int      `toml:"graph_hours"`
	StatusAddr  string   `toml:"status_addr"`
	CorsOrigins []string `toml:"cors_origins"`
}

type SimConfig struct {
	Name       string `toml:"name"`
	Addr       string `toml:"addr"`
	Revision   string `toml:"revision"`
	IntervalMS int64  `toml:"interval_ms"`
}

func LoadFaceConfig(path string) (FaceConfig, error) {
	var cfg FaceConfig
	if err := loadToml(path, &cfg); err != nil {
		return FaceConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "face.local"
	}
	if cfg.StatusAddr == "" {
		cfg.StatusAddr = ":9200"
	}
	if cfg.GraphHours == 0 {
		cfg.GraphHours = int(protocol.DefaultGraphHours)
	}
	if err := ValidateFaceConfig(cfg); err != nil {
		return FaceConfig{}, err
	}
	return cfg, nil
}

func LoadSimConfig(path string) (SimConfig, error) {
	var cfg SimConfig
	if err := loadToml(path, &cfg); err != nil {
		return SimConfig{}, err
	}
	if cfg.Name == "" {
		cfg.Name = "facesim"
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9210"
	}
	if cfg.IntervalMS == 0 {
		cfg.IntervalMS = 5000
	}
	if err := ValidateSimConfig(cfg); err != nil {
		return SimConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateFaceConfig(cfg FaceConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("face config missing name")
	}
	if strings.TrimSpace(cfg.PhoneURL) == "" {
		return fmt.Errorf("face config missing phone_url")
	}
	if !strings.HasPrefix(cfg.PhoneURL, "ws://") && !strings.HasPrefix(cfg.PhoneURL, "wss://") {
		return fmt.Errorf("face config phone_url must be a ws:// or wss:// URL")
	}
	if _, err := protocol.ParseRevision(cfg.Revision); err != nil {
		return fmt.Errorf("face config revision invalid: %w", err)
	}
	if cfg.GraphHours < 1 || cfg.GraphHours > 24 {
		return fmt.Errorf("face config graph_hours out of range [1,24]")
	}
	return nil
}

func ValidateSimConfig(cfg SimConfig) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("sim config missing addr")
	}
	if _, err := protocol.ParseRevision(cfg.Revision); err != nil {
		return fmt.Errorf("sim config revision invalid: %w", err)
	}
	if cfg.IntervalMS < 100 {
		return fmt.Errorf("sim config interval_ms too small")
	}
	return nil
}
