// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Validate and live-publish passes

package publish

import (
	"fmt"
	"time"

	"github.com/leynos/publish-check/internal/cargo"
	"github.com/leynos/publish-check/internal/catalogue"
	"github.com/leynos/publish-check/internal/workspace"
)

// validatePass packages the first catalogue entry and type-checks the rest.
// Overrides are stripped once up front and rewritten dependencies keep their
// snapshot-local paths, so validation runs entirely against the export.
func (o *Orchestrator) validatePass(snapshot *workspace.Snapshot, timeout time.Duration) error {
	cfg := passConfig{
		stripOverrides: true,
		keepLocalPath:  true,
		perPackage:     false,
	}
	return o.runPass(snapshot, cfg, func(pkg catalogue.Package, index int) error {
		argv := o.Catalogue.CheckCommand()
		if index == 0 {
			argv = o.Catalogue.PackageCommand()
		}
		return o.Runner.Execute(o.commandContext(snapshot, pkg.Name, timeout), argv, nil)
	})
}

// livePass publishes each package in release order. Dependencies are
// rewritten per package immediately before its own publish attempt, with
// local paths omitted, so later packages resolve earlier packages' real
// published versions from the registry. Each package's override entry is
// removed once it has been processed.
func (o *Orchestrator) livePass(snapshot *workspace.Snapshot, timeout time.Duration) error {
	cfg := passConfig{
		stripOverrides: false,
		keepLocalPath:  false,
		perPackage:     true,
		cleanup:        o.Rewriter.RemoveOverrideEntry,
	}
	return o.runPass(snapshot, cfg, func(pkg catalogue.Package, _ int) error {
		return o.publishSequence(snapshot, pkg, timeout)
	})
}

// publishSequence runs pkg's live-publish commands strictly in order. A
// failure recognised as already-published short-circuits the remaining
// commands for this package; any other failure aborts the run.
func (o *Orchestrator) publishSequence(snapshot *workspace.Snapshot, pkg catalogue.Package, timeout time.Duration) error {
	for _, argv := range o.Catalogue.PublishCommands(pkg) {
		handled, err := o.publishOne(snapshot, pkg.Name, argv, timeout)
		if err != nil {
			return err
		}
		if handled {
			break
		}
	}
	return nil
}

// publishOne runs a single publish command. It reports handled=true when the
// command failed but the registry output shows the package version already
// exists, in which case the captured output is relayed as if the command had
// succeeded.
func (o *Orchestrator) publishOne(snapshot *workspace.Snapshot, pkg string, argv []string, timeout time.Duration) (bool, error) {
	handled := false

	classifier := func(name string, result cargo.Result) bool {
		if !o.Catalogue.AlreadyPublished(result.Stdout, result.Stderr) {
			return false
		}
		handled = true
		if result.Stdout != "" {
			fmt.Fprint(o.Stdout, result.Stdout)
		}
		if result.Stderr != "" {
			fmt.Fprint(o.Stderr, result.Stderr)
		}
		o.Logger.Warn("package already published on registry; skipping remaining commands",
			"package", name)
		return true
	}

	err := o.Runner.Execute(o.commandContext(snapshot, pkg, timeout), argv, classifier)
	return handled, err
}
