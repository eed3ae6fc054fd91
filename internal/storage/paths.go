// Package storage provides persistent storage for solve records and run
// statistics.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "tilesolver"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/tilesolver/
// - Linux: ~/.local/share/tilesolver/
// - Windows: %APPDATA%/tilesolver/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Linux and other Unix-like: ~/.local/share/, honoring XDG_DATA_HOME
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// GetPDBDir returns the directory for storing pattern database files.
func GetPDBDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	pdbDir := filepath.Join(dataDir, "pdb")
	if err := os.MkdirAll(pdbDir, 0755); err != nil {
		return "", err
	}

	return pdbDir, nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	return dbDir, nil
}
