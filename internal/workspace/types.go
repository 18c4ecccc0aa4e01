// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Snapshot types and layout constants

package workspace

// Layout of an exported snapshot.
const (
	// TempDirPattern names snapshot directories under the system temp dir.
	TempDirPattern = "publish-check-*"
	// ManifestFile is the workspace manifest at the snapshot root.
	ManifestFile = "Cargo.toml"
	// PackagesDir holds the per-package directories.
	PackagesDir = "packages"
	// CacheHomeDir is the run-scoped build-tool cache inside the snapshot.
	CacheHomeDir = ".cache-home"
)

// Snapshot is the temporary, disposable copy of the committed tree used as
// the working area for a single orchestration run. It is exclusively owned
// by the orchestrator for the run's duration.
type Snapshot struct {
	Path string
	keep bool
}
