package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/troupe-cli/troupe/internal/actor"
	"github.com/troupe-cli/troupe/internal/config"
)

// SetupWorkspace creates a temp directory holding a default troupe.yaml
// and an empty actors folder, and returns its path.
func SetupWorkspace(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Save(root))
	require.NoError(t, os.MkdirAll(filepath.Join(root, cfg.ActorsFolderName), 0o755))

	return root
}

// WriteActor writes an actor descriptor under the workspace's default
// actors folder and returns the actor directory.
func WriteActor(t *testing.T, root, name string, def actor.Definition) string {
	t.Helper()

	dir := filepath.Join(root, config.DefaultActorsFolderName, name)
	def.Name = name
	def.Dir = dir
	require.NoError(t, def.Save())

	return dir
}

// WriteConfig writes raw troupe.yaml content into the workspace root.
func WriteConfig(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.Filename), []byte(content), 0o644))
}
