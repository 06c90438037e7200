package main

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds defaults for the ddblens commands.
// Loaded from ddblens.yaml if present.
type Config struct {
	// Region overrides the AWS region resolved from the environment.
	Region string `yaml:"region"`

	// HistoryDir is where the run history database lives.
	// Defaults to ~/.ddblens.
	HistoryDir string `yaml:"historyDir"`

	// DevLogging switches to human-readable development log output.
	DevLogging bool `yaml:"devLogging"`
}

// LoadConfig searches for ddblens.yaml starting from the current directory
// and walking up to the filesystem root. Returns defaults if not found.
func LoadConfig() Config {
	var cfg Config

	configPath := findConfigFile()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err == nil {
			_ = yaml.Unmarshal(data, &cfg)
		}
	}

	if cfg.HistoryDir == "" {
		cfg.HistoryDir = "~/.ddblens"
	}
	cfg.HistoryDir = expandHome(cfg.HistoryDir)
	return cfg
}

// findConfigFile searches for ddblens.yaml walking up from current directory.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, "ddblens.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func newLogger(cfg Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.DevLogging {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
