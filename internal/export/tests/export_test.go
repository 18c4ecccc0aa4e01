// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Exporter integration tests

package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/leynos/publish-check/internal/export"
)

// initRepo creates a repository with one commit containing a workspace
// manifest, a package manifest, and an uncommitted scratch file.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to open worktree: %v", err)
	}

	files := map[string]string{
		"Cargo.toml":                "[workspace]\nmembers = [\"packages/core\"]\n",
		"packages/core/Cargo.toml":  "[package]\nname = \"core\"\n",
		"packages/core/src/lib.txt": "committed\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
		if _, err := worktree.Add(name); err != nil {
			t.Fatalf("failed to stage %s: %v", name, err)
		}
	}

	_, err = worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "publish-check tests",
			Email: "tests@example.invalid",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	// Dirty the working tree; the export must not pick this up.
	if err := os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("dirty\n"), 0o644); err != nil {
		t.Fatalf("failed to write scratch file: %v", err)
	}
	return dir
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}
}

func TestExportSnapshotsCommittedTree(t *testing.T) {
	requireGit(t)
	source := initRepo(t)
	destination := t.TempDir()

	exporter := export.NewExporter(source)
	if err := exporter.Export(destination); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(destination, "packages", "core", "Cargo.toml"))
	if err != nil {
		t.Fatalf("exported manifest missing: %v", err)
	}
	if string(data) != "[package]\nname = \"core\"\n" {
		t.Errorf("exported content = %q", data)
	}

	if _, err := os.Stat(filepath.Join(destination, "scratch.txt")); !os.IsNotExist(err) {
		t.Error("uncommitted file leaked into the export")
	}
}

func TestExportFromSubdirectory(t *testing.T) {
	requireGit(t)
	source := initRepo(t)
	destination := t.TempDir()

	exporter := export.NewExporter(filepath.Join(source, "packages", "core"))
	if err := exporter.Export(destination); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(destination, "Cargo.toml")); err != nil {
		t.Errorf("root manifest missing from export: %v", err)
	}
}

func TestExportOutsideRepositoryFails(t *testing.T) {
	exporter := export.NewExporter(t.TempDir())

	if err := exporter.Export(t.TempDir()); err == nil {
		t.Fatal("Export() should fail outside a repository")
	}
}
