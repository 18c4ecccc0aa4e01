// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Snapshot lifecycle tests

package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leynos/publish-check/internal/workspace"
)

func TestNewCreatesSnapshotDirectory(t *testing.T) {
	snap, err := workspace.New(false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer os.RemoveAll(snap.Path)

	if !snap.Exists() {
		t.Fatalf("snapshot directory %s should exist", snap.Path)
	}
	if snap.ShouldKeep() {
		t.Error("ShouldKeep() = true, want false")
	}
}

func TestSnapshotLayoutPaths(t *testing.T) {
	snap, err := workspace.New(false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer os.RemoveAll(snap.Path)

	if got, want := snap.ManifestPath(), filepath.Join(snap.Path, "Cargo.toml"); got != want {
		t.Errorf("ManifestPath() = %q, want %q", got, want)
	}
	if got, want := snap.PackageDir("rstest-bdd"), filepath.Join(snap.Path, "packages", "rstest-bdd"); got != want {
		t.Errorf("PackageDir() = %q, want %q", got, want)
	}
	if got, want := snap.CacheHome(), filepath.Join(snap.Path, ".cache-home"); got != want {
		t.Errorf("CacheHome() = %q, want %q", got, want)
	}
}

func TestCleanupRemovesDirectory(t *testing.T) {
	snap, err := workspace.New(false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := snap.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if snap.Exists() {
		t.Errorf("snapshot %s should be removed", snap.Path)
	}
}

func TestCleanupToleratesMissingDirectory(t *testing.T) {
	snap, err := workspace.New(false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := os.RemoveAll(snap.Path); err != nil {
		t.Fatalf("failed to remove snapshot: %v", err)
	}

	if err := snap.Cleanup(); err != nil {
		t.Errorf("Cleanup() on a missing directory error = %v", err)
	}
}

func TestCleanupPreservesKeptSnapshot(t *testing.T) {
	snap, err := workspace.New(true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer os.RemoveAll(snap.Path)

	if err := snap.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if !snap.Exists() {
		t.Error("kept snapshot should survive Cleanup()")
	}
}
