// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment variables
// PURPOSE: Test XDG resolution and SEMT_* overrides

package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/semtparser/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestXDGLocations(t *testing.T) {
	configHome := t.TempDir()
	stateHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_STATE_HOME", stateHome)
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvStateDir, "")
	paths.Reload()
	t.Cleanup(paths.Reload)

	assert.Equal(t, filepath.Join(configHome, "semtparser"), paths.ConfigDir())
	assert.Equal(t, filepath.Join(configHome, "semtparser", "config.toml"), paths.UserConfigPath())
	assert.Equal(t, filepath.Join(stateHome, "semtparser", "semtparser.log"), paths.LogFilePath())
}

func TestOverrides(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "/custom/config")
	t.Setenv(paths.EnvStateDir, "/custom/state")

	assert.Equal(t, "/custom/config", paths.ConfigDir())
	assert.Equal(t, "/custom/state/semtparser.log", filepath.ToSlash(paths.LogFilePath()))
	assert.Equal(t, []string{"/custom/config/config.toml", "semtparser.toml"}, paths.ConfigCandidates())
}
