// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Override table stripping

package manifest

const (
	patchKey    = "patch"
	cratesIOKey = "crates-io"
)

// StripOverrides removes the [patch.crates-io] section from the manifest so
// publish-time validation reflects real registry resolution. It is a no-op
// when the section is absent and idempotent otherwise.
func (r *Rewriter) StripOverrides(manifestPath string) error {
	doc, err := load(manifestPath)
	if err != nil {
		return err
	}

	patch := table(doc, patchKey)
	if patch == nil {
		return nil
	}
	if _, ok := patch[cratesIOKey].(map[string]any); !ok {
		return nil
	}

	delete(patch, cratesIOKey)
	if len(patch) == 0 {
		delete(doc, patchKey)
	}
	return store(doc, manifestPath)
}

// RemoveOverrideEntry removes exactly one package's entry from the
// [patch.crates-io] table, dropping now-empty parent tables. It is a no-op
// when the entry is absent.
func (r *Rewriter) RemoveOverrideEntry(manifestPath, pkg string) error {
	doc, err := load(manifestPath)
	if err != nil {
		return err
	}

	patch := table(doc, patchKey)
	if patch == nil {
		return nil
	}
	cratesIO, ok := patch[cratesIOKey].(map[string]any)
	if !ok {
		return nil
	}
	if _, ok := cratesIO[pkg]; !ok {
		return nil
	}

	delete(cratesIO, pkg)
	if len(cratesIO) == 0 {
		delete(patch, cratesIOKey)
	}
	if len(patch) == 0 {
		delete(doc, patchKey)
	}
	return store(doc, manifestPath)
}
