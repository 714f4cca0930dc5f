package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL         = "http://localhost:8080"
	DefaultConsoleTimeout = 10 * time.Second
	consoleDir            = ".etams"
)

// ConsoleConfig configures the terminal client.
type ConsoleConfig struct {
	APIURL      string        `yaml:"api_url"`
	Timeout     time.Duration `yaml:"timeout"`
	SessionFile string        `yaml:"session_file"`
}

// DefaultConsoleConfig returns the settings used when no config file exists.
func DefaultConsoleConfig() ConsoleConfig {
	return ConsoleConfig{
		APIURL:      DefaultAPIURL,
		Timeout:     DefaultConsoleTimeout,
		SessionFile: defaultSessionFile(),
	}
}

// LoadConsole reads path (if non-empty and present) over the defaults, then applies ETAMS_API_URL.
func LoadConsole(path string) (ConsoleConfig, error) {
	cfg := DefaultConsoleConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if url := os.Getenv("ETAMS_API_URL"); url != "" {
		cfg.APIURL = url
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConsoleTimeout
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}
	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(consoleDir, "session.yaml")
	}
	return filepath.Join(home, consoleDir, "session.yaml")
}
