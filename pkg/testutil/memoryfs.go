package testutil

import (
	"testing"

	"github.com/arthur-debert/semtparser/pkg/filesystem"
	"github.com/stretchr/testify/require"
)

// MemoryFS returns a memory filesystem holding files (path to content).
func MemoryFS(t testing.TB, files map[string]string) filesystem.FS {
	t.Helper()
	fs := filesystem.NewMemory()
	for name, content := range files {
		require.NoError(t, fs.WriteFile(name, []byte(content), 0644), "writing %s", name)
	}
	return fs
}
