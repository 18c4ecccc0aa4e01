// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Publish-time dependency rewriting

package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/leynos/publish-check/internal/catalogue"
	"github.com/leynos/publish-check/internal/workspace"
)

// RewriteDependencies replaces each target package's declared dependencies on
// its workspace siblings with an explicit version, optionally retaining the
// relative path back into the snapshot. When no packages are named every
// catalogue package with replacements is rewritten. A requested package that
// the catalogue does not know is a configuration error.
func (r *Rewriter) RewriteDependencies(root, version string, keepLocalPath bool, packages ...string) error {
	targets, err := r.resolveTargets(packages)
	if err != nil {
		return err
	}

	for _, pkg := range targets {
		if len(pkg.Replacements) == 0 {
			continue
		}
		manifestPath := filepath.Join(root, workspace.PackagesDir, pkg.Name, workspace.ManifestFile)
		if err := r.rewriteOne(pkg, manifestPath, version, keepLocalPath); err != nil {
			return err
		}
	}
	return nil
}

// resolveTargets maps requested names to catalogue entries, defaulting to
// the full catalogue order.
func (r *Rewriter) resolveTargets(names []string) ([]catalogue.Package, error) {
	if len(names) == 0 {
		return r.cat.Packages, nil
	}
	targets := make([]catalogue.Package, 0, len(names))
	for _, name := range names {
		pkg, ok := r.cat.Package(name)
		if !ok {
			return nil, fmt.Errorf("unknown package %q", name)
		}
		targets = append(targets, pkg)
	}
	return targets, nil
}

// rewriteOne applies every replacement entry of pkg to its manifest.
func (r *Rewriter) rewriteOne(pkg catalogue.Package, manifestPath, version string, keepLocalPath bool) error {
	doc, err := load(manifestPath)
	if err != nil {
		return err
	}

	for _, rep := range pkg.Replacements {
		section, ok := doc[rep.Section].(map[string]any)
		if !ok {
			return fmt.Errorf("expected section [%s] in %s", rep.Section, manifestPath)
		}
		existing, ok := section[rep.Name]
		if !ok {
			return fmt.Errorf("expected dependency %q in %s", rep.Name, manifestPath)
		}
		section[rep.Name] = inlineDependency(existing, rep.Path, version, keepLocalPath)
	}

	return store(doc, manifestPath)
}

// inlineDependency builds the replacement dependency entry: the relative
// path (only when retained), the explicit version, and any metadata carried
// over from the previous declaration apart from workspace/path/version.
func inlineDependency(existing any, path, version string, keepLocalPath bool) map[string]any {
	dependency := make(map[string]any)
	if keepLocalPath {
		dependency["path"] = path
	}
	dependency["version"] = version

	if previous, ok := existing.(map[string]any); ok {
		for key, value := range previous {
			switch key {
			case "workspace", "path", "version":
				continue
			}
			dependency[key] = value
		}
	}
	return dependency
}
