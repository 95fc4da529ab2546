// Package paths resolves where resippy keeps its config file and database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "resippy"

// DefaultDataDirName is created in the working directory when nothing else
// names a data directory, so each household folder keeps its own menu.
const DefaultDataDirName = ".resippy-db"

// ConfigFileName is the config file inside the config directory.
const ConfigFileName = "config.yaml"

// Environment variable overrides.
const (
	EnvConfigDir = "RESIPPY_CONFIG_DIR"
	EnvDataDir   = "RESIPPY_DATA_DIR"
)

// platformDir is swapped out in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the per-user config directory:
// $XDG_CONFIG_HOME/resippy or ~/.config/resippy on Linux, and
// os.UserConfigDir()/resippy elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir picks the config directory: flag, then RESIPPY_CONFIG_DIR,
// then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the data directory: flag, then data_dir from
// config.yaml, then RESIPPY_DATA_DIR, then ./.resippy-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config file path inside dir.
func ConfigFile(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}
