package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gntaxa"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gntaxa by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gntaxa by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gntaxa/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gntaxa/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ArchivePath returns the path to the SQLite archive. Relative paths
// are placed into the cache directory.
func ArchivePath(homeDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(CacheDir(homeDir), path)
}
