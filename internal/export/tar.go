// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Safe tar extraction for exported snapshots

package export

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractArchive unpacks archivePath into destination, refusing any entry
// whose resolved path, including link targets, would fall outside the
// destination directory.
func extractArchive(archivePath, destination string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("archive not found at %s: %w", archivePath, err)
	}
	defer file.Close()

	root, err := filepath.Abs(destination)
	if err != nil {
		return fmt.Errorf("failed to resolve export destination %s: %w", destination, err)
	}

	reader := tar.NewReader(file)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read archive %s: %w", archivePath, err)
		}
		if err := extractEntry(reader, header, root); err != nil {
			return err
		}
	}
}

// extractEntry validates one archive entry and writes it under root.
func extractEntry(reader *tar.Reader, header *tar.Header, root string) error {
	target, err := securePath(root, header.Name)
	if err != nil {
		return err
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, os.FileMode(header.Mode).Perm()); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", target, err)
		}
	case tar.TypeReg:
		if err := writeFile(reader, header, target); err != nil {
			return err
		}
	case tar.TypeSymlink:
		if err := validateLinkTarget(root, target, header); err != nil {
			return err
		}
		if err := os.Symlink(header.Linkname, target); err != nil {
			return fmt.Errorf("failed to create symlink %s: %w", target, err)
		}
	case tar.TypeLink:
		if err := validateLinkTarget(root, target, header); err != nil {
			return err
		}
		source, err := securePath(root, header.Linkname)
		if err != nil {
			return err
		}
		if err := os.Link(source, target); err != nil {
			return fmt.Errorf("failed to create hard link %s: %w", target, err)
		}
	default:
		return fmt.Errorf("refusing to extract unsupported tar entry type: %q", header.Name)
	}
	return nil
}

// writeFile extracts one regular file entry.
func writeFile(reader *tar.Reader, header *tar.Header, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", target, err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode).Perm())
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract file %s: %w", target, err)
	}
	return out.Close()
}

// securePath joins name onto root and verifies the result stays inside it.
func securePath(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if !within(root, target) {
		return "", fmt.Errorf("refusing to extract member outside destination: %q", name)
	}
	return target, nil
}

// validateLinkTarget verifies a symlink or hard link entry cannot point
// outside root once extracted.
func validateLinkTarget(root, target string, header *tar.Header) error {
	linkname := filepath.FromSlash(header.Linkname)
	var resolved string
	if filepath.IsAbs(linkname) {
		resolved = filepath.Clean(linkname)
	} else if header.Typeflag == tar.TypeLink {
		// Hard link names are archive-relative.
		resolved = filepath.Join(root, linkname)
	} else {
		resolved = filepath.Join(filepath.Dir(target), linkname)
	}
	if !within(root, resolved) {
		return fmt.Errorf("refusing to extract link entry outside destination: %q", header.Name)
	}
	return nil
}

// within reports whether path is root or sits beneath it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
