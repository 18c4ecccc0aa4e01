// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Publish-check orchestration

package publish

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/leynos/publish-check/internal/cargo"
	"github.com/leynos/publish-check/internal/catalogue"
	"github.com/leynos/publish-check/internal/workspace"
)

// Orchestrator sequences the exporter, rewriter, and command runner across
// the ordered package catalogue. It owns the snapshot's lifecycle for the
// duration of a run.
type Orchestrator struct {
	Catalogue *catalogue.Catalogue
	Exporter  Exporter
	Rewriter  Rewriter
	Runner    Runner
	Logger    *log.Logger

	// Stdout and Stderr receive relayed output from commands whose failure
	// was classified as already-published.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an orchestrator wired to its collaborators.
func New(cat *catalogue.Catalogue, exporter Exporter, rewriter Rewriter, runner Runner, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Orchestrator{
		Catalogue: cat,
		Exporter:  exporter,
		Rewriter:  rewriter,
		Runner:    runner,
		Logger:    logger,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
}

// Run executes one orchestration pass: export a snapshot, prune the member
// list, dispatch the mode-specific pass, and clean up the snapshot on every
// exit path unless preservation was requested.
func (o *Orchestrator) Run(opts Options) (err error) {
	if opts.Timeout <= 0 {
		return fmt.Errorf("timeout must be a positive duration, got %v", opts.Timeout)
	}
	if o.Catalogue == nil || len(o.Catalogue.Packages) == 0 {
		return fmt.Errorf("package catalogue must not be empty")
	}

	snapshot, err := workspace.New(opts.KeepTemp)
	if err != nil {
		return err
	}
	defer func() {
		if snapshot.ShouldKeep() {
			o.Logger.Info("preserving workspace", "path", snapshot.Path)
			return
		}
		if cleanupErr := snapshot.Cleanup(); cleanupErr != nil && err == nil {
			err = cleanupErr
		}
	}()

	if err := o.Exporter.Export(snapshot.Path); err != nil {
		return err
	}
	if err := o.Rewriter.PruneMembers(snapshot.ManifestPath()); err != nil {
		return err
	}

	if opts.Live {
		return o.livePass(snapshot, opts.Timeout)
	}
	return o.validatePass(snapshot, opts.Timeout)
}

// runPass is the shared skeleton of both passes: optional override
// stripping, one version read, global or per-package dependency rewriting,
// then the per-package action in catalogue order with optional cleanup.
func (o *Orchestrator) runPass(snapshot *workspace.Snapshot, cfg passConfig, action func(pkg catalogue.Package, index int) error) error {
	manifest := snapshot.ManifestPath()

	if cfg.stripOverrides {
		if err := o.Rewriter.StripOverrides(manifest); err != nil {
			return err
		}
	}

	version, err := o.Rewriter.Version(manifest)
	if err != nil {
		return err
	}

	if !cfg.perPackage {
		if err := o.Rewriter.RewriteDependencies(snapshot.Path, version, cfg.keepLocalPath); err != nil {
			return err
		}
	}

	for index, pkg := range o.Catalogue.Packages {
		if cfg.perPackage {
			if err := o.Rewriter.RewriteDependencies(snapshot.Path, version, cfg.keepLocalPath, pkg.Name); err != nil {
				return err
			}
		}
		if err := action(pkg, index); err != nil {
			return err
		}
		if cfg.cleanup != nil {
			if err := cfg.cleanup(manifest, pkg.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// commandContext derives the execution context for one package: its
// directory under the snapshot, the run-scoped cache home, and the uniform
// timeout.
func (o *Orchestrator) commandContext(snapshot *workspace.Snapshot, pkg string, timeout time.Duration) cargo.Context {
	return cargo.Context{
		Package: pkg,
		Dir:     snapshot.PackageDir(pkg),
		Env:     map[string]string{cargo.CacheHomeEnv: snapshot.CacheHome()},
		Timeout: timeout,
	}
}
