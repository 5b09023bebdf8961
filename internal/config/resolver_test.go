package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newResolver isolates the template tier in a temp directory so the test
// host's real config home is never consulted.
func newResolver(t *testing.T) *Resolver {
	t.Helper()
	return &Resolver{TemplateDir: t.TempDir()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_Default(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	cfg, err := r.Resolve(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestResolve_WorkspaceTier(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, Filename), "max_iterations: 42\ndefault_model: opus\n")

	cfg, err := r.Resolve(root)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.MaxIterations)
	assert.Equal(t, "opus", cfg.DefaultModel)
	// Keys absent from the document keep their defaults.
	assert.Equal(t, DefaultActorsFolderName, cfg.ActorsFolderName)
	assert.Equal(t, DefaultLogBucketMinutes, cfg.LogBucketMinutes)
}

func TestResolve_TemplateTier(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	writeFile(t, r.TemplatePath(), "max_iterations: 7\n")

	cfg, err := r.Resolve(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxIterations)
}

func TestResolve_WorkspaceBeatsTemplate(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	writeFile(t, r.TemplatePath(), "max_iterations: 7\n")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, Filename), "max_iterations: 3\n")

	cfg, err := r.Resolve(root)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxIterations)
}

func TestResolve_MalformedTierIsFatal(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, Filename), "max_iterations: [\n")

	_, err := r.Resolve(root)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestResolve_InvalidValuesAreFatal(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, Filename), "max_iterations: -1\n")

	_, err := r.Resolve(root)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestResolve_MalformedTemplateDoesNotFallThrough(t *testing.T) {
	t.Parallel()

	r := newResolver(t)
	writeFile(t, r.TemplatePath(), "{broken")

	_, err := r.Resolve(t.TempDir())
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}
