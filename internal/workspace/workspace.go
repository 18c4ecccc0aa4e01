// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Snapshot lifecycle

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// New creates a fresh snapshot directory. When keep is true the directory
// survives Cleanup so operators can inspect it after the run.
func New(keep bool) (*Snapshot, error) {
	path, err := os.MkdirTemp("", TempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Snapshot{Path: path, keep: keep}, nil
}

// ManifestPath returns the workspace manifest at the snapshot root.
func (s *Snapshot) ManifestPath() string {
	return filepath.Join(s.Path, ManifestFile)
}

// PackageDir returns the directory for one package.
func (s *Snapshot) PackageDir(name string) string {
	return filepath.Join(s.Path, PackagesDir, name)
}

// CacheHome returns the run-scoped build-tool cache directory.
func (s *Snapshot) CacheHome() string {
	return filepath.Join(s.Path, CacheHomeDir)
}

// ShouldKeep reports whether the snapshot is preserved after the run.
func (s *Snapshot) ShouldKeep() bool {
	return s.keep
}

// Exists checks whether the snapshot directory is still on disk.
func (s *Snapshot) Exists() bool {
	info, err := os.Stat(s.Path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Cleanup removes the snapshot directory unless preservation was requested.
// A directory that is already gone is not an error.
func (s *Snapshot) Cleanup() error {
	if s.keep {
		return nil
	}
	if err := os.RemoveAll(s.Path); err != nil {
		return fmt.Errorf("failed to clean up snapshot %s: %w", s.Path, err)
	}
	return nil
}
