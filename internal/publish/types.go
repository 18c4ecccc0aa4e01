// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Orchestrator collaborator contracts and run options

package publish

import (
	"time"

	"github.com/leynos/publish-check/internal/cargo"
)

// Exporter produces a snapshot of the committed tree into a destination
// directory.
type Exporter interface {
	Export(destination string) error
}

// Rewriter applies publish-time manifest edits. The orchestrator consumes
// this contract without knowing how the edits are performed.
type Rewriter interface {
	StripOverrides(manifest string) error
	PruneMembers(manifest string) error
	Version(manifest string) (string, error)
	RewriteDependencies(root, version string, keepLocalPath bool, packages ...string) error
	RemoveOverrideEntry(manifest, pkg string) error
}

// Runner executes one build-tool invocation within a command context.
type Runner interface {
	Execute(ctx cargo.Context, argv []string, onFailure cargo.FailureClassifier) error
}

// Options configures one orchestration run.
type Options struct {
	// KeepTemp preserves the snapshot directory after the run for
	// debugging.
	KeepTemp bool
	// Timeout is the wall-clock bound applied uniformly to every command
	// invocation in the run.
	Timeout time.Duration
	// Live selects the live-publish pass over the validate pass.
	Live bool
}

// passConfig controls one orchestration pass. Two fixed configurations
// exist: validate and live publish.
type passConfig struct {
	// stripOverrides removes the override table once before the pass.
	stripOverrides bool
	// keepLocalPath retains snapshot-relative paths alongside rewritten
	// versions.
	keepLocalPath bool
	// perPackage applies dependency rewriting freshly for each package
	// immediately before that package runs, instead of once globally.
	perPackage bool
	// cleanup, when set, runs after each package completes.
	cleanup func(manifest, pkg string) error
}
