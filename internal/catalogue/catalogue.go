// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Catalogue loading, validation, and command construction

package catalogue

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in catalogue for the rstest-bdd workspace.
// Packages appear in dependency order: earlier entries must be published
// before later entries can resolve them from the registry.
func Default() *Catalogue {
	return &Catalogue{
		Tool: DefaultTool,
		Packages: []Package{
			{Name: "rstest-bdd-patterns"},
			{
				Name: "rstest-bdd-macros",
				Replacements: []Replacement{
					{Section: "dependencies", Name: "rstest-bdd-patterns", Path: "../rstest-bdd-patterns"},
					{Section: "dev-dependencies", Name: "rstest-bdd", Path: "../rstest-bdd"},
				},
			},
			{
				Name: "rstest-bdd",
				Replacements: []Replacement{
					{Section: "dependencies", Name: "rstest-bdd-patterns", Path: "../rstest-bdd-patterns"},
					{Section: "dev-dependencies", Name: "rstest-bdd-macros", Path: "../rstest-bdd-macros"},
				},
			},
			{
				Name:   "cargo-bdd",
				Locked: true,
				Replacements: []Replacement{
					{Section: "dependencies", Name: "rstest-bdd", Path: "../rstest-bdd"},
				},
			},
		},
		// Approximations of registry error text; kept as data so new
		// wordings can be added without a code change.
		Markers: []string{
			"already exists on crates.io index",
			"already exists on crates.io",
			"already uploaded",
			"already exists",
		},
	}
}

// Load reads a catalogue from a YAML file and validates it.
func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %w", path, err)
	}

	var cat Catalogue
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue %s: %w", path, err)
	}

	if cat.Tool == "" {
		cat.Tool = DefaultTool
	}
	if len(cat.Markers) == 0 {
		cat.Markers = Default().Markers
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalogue %s: %w", path, err)
	}
	return &cat, nil
}

// Validate checks the catalogue invariants: a non-empty, duplicate-free
// package list whose replacement entries reference known packages.
func (c *Catalogue) Validate() error {
	if c.Tool == "" {
		return fmt.Errorf("catalogue tool must not be empty")
	}
	if len(c.Packages) == 0 {
		return fmt.Errorf("package catalogue must not be empty")
	}

	seen := make(map[string]bool, len(c.Packages))
	for _, pkg := range c.Packages {
		if pkg.Name == "" {
			return fmt.Errorf("catalogue contains a package with an empty name")
		}
		if seen[pkg.Name] {
			return fmt.Errorf("duplicate package %q in catalogue", pkg.Name)
		}
		seen[pkg.Name] = true
	}

	for _, pkg := range c.Packages {
		for _, rep := range pkg.Replacements {
			if rep.Section == "" || rep.Name == "" || rep.Path == "" {
				return fmt.Errorf("package %q has an incomplete replacement entry", pkg.Name)
			}
			if !seen[rep.Name] {
				return fmt.Errorf("package %q replacement references unknown package %q", pkg.Name, rep.Name)
			}
		}
	}
	return nil
}

// Names returns the package names in catalogue order.
func (c *Catalogue) Names() []string {
	names := make([]string, len(c.Packages))
	for i, pkg := range c.Packages {
		names[i] = pkg.Name
	}
	return names
}

// Package returns the catalogue entry for name.
func (c *Catalogue) Package(name string) (Package, bool) {
	for _, pkg := range c.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return Package{}, false
}

// Contains reports whether name is a catalogue package.
func (c *Catalogue) Contains(name string) bool {
	_, ok := c.Package(name)
	return ok
}

// PackageCommand returns the local packaging invocation used by the validate
// pass for the first package in release order.
func (c *Catalogue) PackageCommand() []string {
	return []string{c.Tool, "package", "--allow-dirty", "--no-verify"}
}

// CheckCommand returns the compilation check invocation used by the validate
// pass for every package after the first.
func (c *Catalogue) CheckCommand() []string {
	return []string{c.Tool, "check", "--all-features"}
}

// PublishCommands returns the ordered live-publish command sequence for pkg:
// a dry-run publish followed by the real publish. Locked packages carry
// --locked on both invocations.
func (c *Catalogue) PublishCommands(pkg Package) [][]string {
	commands := [][]string{
		{c.Tool, "publish", "--dry-run"},
		{c.Tool, "publish"},
	}
	if pkg.Locked {
		for i, command := range commands {
			commands[i] = append(command, "--locked")
		}
	}
	return commands
}

// AlreadyPublished reports whether the captured output of a failed publish
// command indicates the package version already exists on the registry. The
// match is a case-insensitive substring search against the marker phrases.
func (c *Catalogue) AlreadyPublished(stdout, stderr string) bool {
	for _, stream := range []string{stdout, stderr} {
		if stream == "" {
			continue
		}
		lowered := strings.ToLower(stream)
		for _, marker := range c.Markers {
			if strings.Contains(lowered, strings.ToLower(marker)) {
				return true
			}
		}
	}
	return false
}
