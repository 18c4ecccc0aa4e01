// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Collaborator fakes for orchestrator tests

package tests

import (
	"fmt"
	"strings"

	"github.com/leynos/publish-check/internal/cargo"
)

// callLog records collaborator invocations in order so tests can assert the
// interleaving the workflow guarantees.
type callLog struct {
	entries []string
}

func (l *callLog) add(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// fakeExporter records export destinations and optionally fails.
type fakeExporter struct {
	log          *callLog
	destinations []string
	err          error
}

func (f *fakeExporter) Export(destination string) error {
	f.destinations = append(f.destinations, destination)
	f.log.add("export")
	return f.err
}

// fakeRewriter records rewriter calls and answers a fixed version.
type fakeRewriter struct {
	log        *callLog
	version    string
	versionErr error
}

func (f *fakeRewriter) StripOverrides(manifest string) error {
	f.log.add("strip")
	return nil
}

func (f *fakeRewriter) PruneMembers(manifest string) error {
	f.log.add("prune")
	return nil
}

func (f *fakeRewriter) Version(manifest string) (string, error) {
	f.log.add("version")
	return f.version, f.versionErr
}

func (f *fakeRewriter) RewriteDependencies(root, version string, keepLocalPath bool, packages ...string) error {
	f.log.add("rewrite keep=%v packages=%s", keepLocalPath, strings.Join(packages, ","))
	return nil
}

func (f *fakeRewriter) RemoveOverrideEntry(manifest, pkg string) error {
	f.log.add("remove-override %s", pkg)
	return nil
}

// scriptedFailure describes a command the fake runner should fail.
type scriptedFailure struct {
	exitCode int
	stdout   string
	stderr   string
}

// fakeRunner records executed commands and fails the ones scripted against
// a "pkg subcommand" key, offering the failure to the classifier first, the
// way the real runner does.
type fakeRunner struct {
	log      *callLog
	failures map[string]scriptedFailure
}

func commandKey(pkg string, argv []string) string {
	return pkg + " " + strings.Join(argv[1:], " ")
}

func (f *fakeRunner) Execute(ctx cargo.Context, argv []string, onFailure cargo.FailureClassifier) error {
	f.log.add("run %s %s", ctx.Package, strings.Join(argv[1:], " "))

	failure, ok := f.failures[commandKey(ctx.Package, argv)]
	if !ok {
		return nil
	}
	result := cargo.Result{
		Argv:     argv,
		ExitCode: failure.exitCode,
		Stdout:   failure.stdout,
		Stderr:   failure.stderr,
	}
	if onFailure != nil && onFailure(ctx.Package, result) {
		return nil
	}
	return fmt.Errorf("command failed for %q (exit code %d)", ctx.Package, failure.exitCode)
}
