package workspace

import (
	"fmt"
	"path/filepath"
	"slices"
)

// Reference lists hold folders and files treated as extra context for a
// workspace. Paths are stored absolute and de-duplicated.

// FolderReferences returns a copy of the folder reference list.
func (w *Workspace) FolderReferences() []string {
	return slices.Clone(w.folderRefs)
}

// FileReferences returns a copy of the file reference list.
func (w *Workspace) FileReferences() []string {
	return slices.Clone(w.fileRefs)
}

// AddFolderReference adds a folder to the reference list. Relative paths
// are normalized to absolute; duplicates are ignored.
func (w *Workspace) AddFolderReference(path string) error {
	if !w.loaded {
		return ErrNotLoaded
	}
	abs, err := normalizeReference(path)
	if err != nil {
		return err
	}
	if !slices.Contains(w.folderRefs, abs) {
		w.folderRefs = append(w.folderRefs, abs)
	}
	return nil
}

// AddFileReference adds a file to the reference list. Relative paths are
// normalized to absolute; duplicates are ignored.
func (w *Workspace) AddFileReference(path string) error {
	if !w.loaded {
		return ErrNotLoaded
	}
	abs, err := normalizeReference(path)
	if err != nil {
		return err
	}
	if !slices.Contains(w.fileRefs, abs) {
		w.fileRefs = append(w.fileRefs, abs)
	}
	return nil
}

// RemoveFolderReference removes a folder from the reference list.
func (w *Workspace) RemoveFolderReference(path string) error {
	if !w.loaded {
		return ErrNotLoaded
	}
	abs, err := normalizeReference(path)
	if err != nil {
		return err
	}
	w.folderRefs = slices.DeleteFunc(w.folderRefs, func(p string) bool { return p == abs })
	return nil
}

// RemoveFileReference removes a file from the reference list.
func (w *Workspace) RemoveFileReference(path string) error {
	if !w.loaded {
		return ErrNotLoaded
	}
	abs, err := normalizeReference(path)
	if err != nil {
		return err
	}
	w.fileRefs = slices.DeleteFunc(w.fileRefs, func(p string) bool { return p == abs })
	return nil
}

// ClearReferences empties both reference lists.
func (w *Workspace) ClearReferences() error {
	if !w.loaded {
		return ErrNotLoaded
	}
	w.folderRefs = nil
	w.fileRefs = nil
	return nil
}

func normalizeReference(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve reference path: %w", err)
	}
	return filepath.Clean(abs), nil
}
