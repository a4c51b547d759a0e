// Package config provides configuration management for iconclip.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the directories iconclip writes to.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/iconclip)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/iconclip)
	DataDir string

	// CacheDir is the directory for cache files (~/.cache/iconclip)
	CacheDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory
// spec. On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir: filepath.Join(appData, "iconclip"),
			DataDir:   filepath.Join(localAppData, "iconclip"),
			CacheDir:  filepath.Join(localAppData, "iconclip", "cache"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "iconclip"),
		DataDir:   filepath.Join(dataHome, "iconclip"),
		CacheDir:  filepath.Join(cacheHome, "iconclip"),
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// DatabaseFile returns the path to the SQLite store.
func (p *Paths) DatabaseFile() string {
	return filepath.Join(p.DataDir, "icons.db")
}

// LogFile returns the path to the log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.DataDir, "iconclip.log")
}

// LockFile returns the path to the single-instance lock file.
func (p *Paths) LockFile() string {
	return filepath.Join(p.CacheDir, "picker.lock")
}

// homeDir returns the user's home directory, falling back to the current
// directory when it cannot be determined.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
