// Package config provides XDG paths, the TOML config file and validation of
// merged settings.
package config

import (
	"os"
	"path/filepath"
)

const appName = "ultramac"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	return xdgHome("XDG_DATA_HOME", ".local", "share")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	return xdgHome("XDG_STATE_HOME", ".local", "state")
}

func xdgHome(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultCSVDir returns the directory holding per-user CSV score files.
func DefaultCSVDir() string {
	return filepath.Join(XDGDataHome(), appName, "scores")
}

// DefaultLogPath returns the log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}

// DefaultStorePath returns the default location for a store backend, or ""
// when the backend keeps nothing on disk.
func DefaultStorePath(backend string) string {
	switch backend {
	case "csv":
		return DefaultCSVDir()
	case "memory":
		return ""
	default:
		return DefaultDBPath()
	}
}
