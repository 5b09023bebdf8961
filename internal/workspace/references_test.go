package workspace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troupe-cli/troupe/internal/testutil"
)

func loadedWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, _ := newWorkspace(t)
	require.NoError(t, ws.Load(testutil.SetupWorkspace(t)))
	return ws
}

func TestFolderReferences_NormalizedAndDeduplicated(t *testing.T) {
	t.Parallel()

	ws := loadedWorkspace(t)

	require.NoError(t, ws.AddFolderReference("relative/docs"))
	require.NoError(t, ws.AddFolderReference("relative/docs"))
	require.NoError(t, ws.AddFolderReference("relative/other/../docs"))

	refs := ws.FolderReferences()
	require.Len(t, refs, 1)
	assert.True(t, filepath.IsAbs(refs[0]))
}

func TestFileReferences_SeparateFromFolders(t *testing.T) {
	t.Parallel()

	ws := loadedWorkspace(t)

	require.NoError(t, ws.AddFolderReference("/tmp/data"))
	require.NoError(t, ws.AddFileReference("/tmp/data/notes.md"))

	assert.Len(t, ws.FolderReferences(), 1)
	assert.Len(t, ws.FileReferences(), 1)
}

func TestRemoveReferences(t *testing.T) {
	t.Parallel()

	ws := loadedWorkspace(t)

	require.NoError(t, ws.AddFolderReference("/tmp/a"))
	require.NoError(t, ws.AddFolderReference("/tmp/b"))
	require.NoError(t, ws.AddFileReference("/tmp/a/f.txt"))

	require.NoError(t, ws.RemoveFolderReference("/tmp/a"))
	assert.Equal(t, []string{filepath.Clean("/tmp/b")}, ws.FolderReferences())

	require.NoError(t, ws.RemoveFileReference("/tmp/a/f.txt"))
	assert.Empty(t, ws.FileReferences())

	// Removing an absent path is not an error.
	require.NoError(t, ws.RemoveFolderReference("/tmp/missing"))
}

func TestClearReferences(t *testing.T) {
	t.Parallel()

	ws := loadedWorkspace(t)

	require.NoError(t, ws.AddFolderReference("/tmp/a"))
	require.NoError(t, ws.AddFileReference("/tmp/a/f.txt"))
	require.NoError(t, ws.ClearReferences())

	assert.Empty(t, ws.FolderReferences())
	assert.Empty(t, ws.FileReferences())
}

func TestReferences_ReturnCopies(t *testing.T) {
	t.Parallel()

	ws := loadedWorkspace(t)
	require.NoError(t, ws.AddFolderReference("/tmp/a"))

	refs := ws.FolderReferences()
	refs[0] = "mutated"

	assert.NotEqual(t, "mutated", ws.FolderReferences()[0])
}
