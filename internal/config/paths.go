package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the directory name of the cfdl configuration.
	DirName = "cfdl"

	// FileName is the configuration file name.
	FileName = "config.yaml"

	// LogFileName is the log file the interactive form writes to.
	LogFileName = "cfdl.log"

	// EnvPrefix is the prefix of environment overrides, e.g. CFDL_API_BASE_URL.
	EnvPrefix = "CFDL"
)

// GetConfigDir returns the path to the cfdl configuration directory.
// It honours XDG_CONFIG_HOME and defaults to ~/.config/cfdl/.
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configHome, DirName), nil
}

// GetConfigPath returns the path to the configuration file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// DefaultLogPath returns the default log file inside the configuration
// directory, falling back to ~/.config/cfdl/cfdl.log.
func DefaultLogPath() string {
	dir, err := GetConfigDir()
	if err != nil {
		return "~/.config/" + DirName + "/" + LogFileName
	}
	return filepath.Join(dir, LogFileName)
}
