package config

import (
	"os"
	"path/filepath"
)

const (
	AppName      = "widescreen"
	DbName       = "widescreen.db"
	SettingsName = "settings.yaml"
)

// DataDir returns the path to the widescreen data directory (~/.widescreen/)
// Creates the directory if it doesn't exist
// Can be overridden with WIDESCREEN_DATA_DIR environment variable (primarily for testing)
func DataDir() (string, error) {
	// Check for test override
	if dataDir := os.Getenv("WIDESCREEN_DATA_DIR"); dataDir != "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return "", err
		}
		return dataDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := filepath.Join(home, "."+AppName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// SessionsDir returns the path to exported session files (~/.widescreen/sessions/)
// Creates the directory if it doesn't exist
func SessionsDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	sessionsDir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return "", err
	}

	return sessionsDir, nil
}

// DatabasePath returns the path to the SQLite database (~/.widescreen/widescreen.db)
func DatabasePath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, DbName), nil
}

// SettingsPath returns the path to the settings file (~/.widescreen/settings.yaml)
func SettingsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dataDir, SettingsName), nil
}

// LogDir returns the path to the log directory (~/.widescreen/logs/)
// Creates the directory if it doesn't exist
func LogDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return "", err
	}

	return logDir, nil
}
