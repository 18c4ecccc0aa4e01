// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Catalogue types and constants

package catalogue

// DefaultTool is the build tool driven by the release workflow.
const DefaultTool = "cargo"

// Replacement describes how one inter-package dependency declaration is
// rewritten at publish time: the manifest section it lives in, the dependency
// name, and the workspace-relative path used when local paths are retained.
type Replacement struct {
	Section string `yaml:"section"`
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
}

// Package is one publishable package in the release order.
type Package struct {
	Name string `yaml:"name"`
	// Locked packages pin dependency resolution with --locked on their
	// publish commands because their correctness depends on exact
	// transitive versions.
	Locked       bool          `yaml:"locked,omitempty"`
	Replacements []Replacement `yaml:"replacements,omitempty"`
}

// Catalogue is the fixed, ordered list of publishable packages together with
// the build tool name and the registry marker phrases that identify an
// already-published failure. It is loaded once at process start and never
// mutated during a run.
type Catalogue struct {
	Tool     string    `yaml:"tool"`
	Packages []Package `yaml:"packages"`
	Markers  []string  `yaml:"markers"`
}
