// Package paths resolves the configuration directory and the seed file
// location from flags, config values and the environment.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory name under the platform config root.
const appDirName = "phonebook"

// Environment variable names for location overrides.
const (
	EnvConfigDir = "PHONEBOOK_CONFIG_DIR"
	EnvSeedFile  = "PHONEBOOK_SEED_FILE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/phonebook (fallback ~/.config/phonebook)
// macOS:   ~/Library/Application Support/phonebook
// Windows: %APPDATA%/phonebook
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > PHONEBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveSeedFile returns the seed file path following the precedence chain:
// flag > configYAMLValue > PHONEBOOK_SEED_FILE env. An empty result means no
// seed file; the directory starts empty.
func ResolveSeedFile(flag, configYAMLValue string) (string, error) {
	switch {
	case flag != "":
		return filepath.Abs(flag)
	case configYAMLValue != "":
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvSeedFile); env != "" {
		return filepath.Abs(env)
	}
	return "", nil
}
