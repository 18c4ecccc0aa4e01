// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Committed-tree snapshot export via git archive

package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
)

// gitArchiveTimeout bounds the archive command itself; a stuck git process
// is an environment problem, not something worth waiting out.
const gitArchiveTimeout = 60 * time.Second

// Exporter produces a byte-for-byte snapshot of the committed tree into a
// destination directory. Uncommitted changes are deliberately excluded: the
// publish workflow must validate exactly what a release tag would contain.
type Exporter struct {
	// Source is the repository root, or any directory inside it.
	Source string
}

// NewExporter creates an exporter rooted at source.
func NewExporter(source string) *Exporter {
	return &Exporter{Source: source}
}

// Export populates destination with the tree at HEAD. The destination is
// created when missing. Archive entries that would escape the destination
// (directly or through link targets) abort the export.
func (e *Exporter) Export(destination string) error {
	repo, err := git.PlainOpenWithOptions(e.Source, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("failed to open repository at %s: %w", e.Source, err)
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to resolve worktree: %w", err)
	}
	// Archive from the worktree root: git archive only includes the
	// current directory's subtree.
	root := worktree.Filesystem.Root()

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return fmt.Errorf("failed to create export destination %s: %w", destination, err)
	}

	archiveDir, err := os.MkdirTemp("", "publish-check-archive-*")
	if err != nil {
		return fmt.Errorf("failed to create archive staging directory: %w", err)
	}
	defer os.RemoveAll(archiveDir)

	archivePath := filepath.Join(archiveDir, "workspace.tar")
	if err := createArchive(root, archivePath, head.Hash().String()); err != nil {
		return err
	}
	return extractArchive(archivePath, destination)
}

// createArchive runs git archive for the given commit into archivePath.
func createArchive(root, archivePath, commit string) error {
	ctx, cancel := context.WithTimeout(context.Background(), gitArchiveTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "-C", root,
		"archive", "--format=tar", "--output="+archivePath, commit)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("git archive timed out after %d seconds", int(gitArchiveTimeout.Seconds()))
		}
		diagnostics := strings.TrimSpace(output.String())
		if diagnostics != "" {
			return fmt.Errorf("git archive failed: %w: %s", err, diagnostics)
		}
		return fmt.Errorf("git archive failed: %w", err)
	}
	return nil
}
