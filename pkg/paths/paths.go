// Package paths resolves where semtparser keeps its own files. It follows
// the XDG Base Directory specification; the SEMT_CONFIG_DIR and
// SEMT_STATE_DIR variables override the XDG locations.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for semtparser
	EnvConfigDir = "SEMT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for semtparser
	EnvStateDir = "SEMT_STATE_DIR"
)

const (
	// AppDirName is the directory name used under the XDG roots
	AppDirName = "semtparser"

	// ConfigFileName is the user configuration file name
	ConfigFileName = "config.toml"

	// LocalConfigFileName is looked up in the working directory
	LocalConfigFileName = "semtparser.toml"

	// LogFileName is the name of the log file
	LogFileName = "semtparser.log"
)

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory for logs and other state.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// UserConfigPath returns the path of the user configuration file.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ConfigCandidates lists the configuration files consulted when no explicit
// path is given, lowest priority first.
func ConfigCandidates() []string {
	return []string{UserConfigPath(), LocalConfigFileName}
}

// Reload re-reads the XDG environment. Tests that change XDG_* variables
// call it after t.Setenv.
func Reload() {
	xdg.Reload()
}
