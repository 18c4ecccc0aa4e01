// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Manifest document load/store helpers

package manifest

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/leynos/publish-check/internal/catalogue"
)

// Rewriter applies publish-time edits to workspace manifests: stripping
// override tables, pruning non-package member entries, and rewriting
// inter-package dependency declarations per the catalogue's replacement
// table. All edits are in place.
type Rewriter struct {
	cat *catalogue.Catalogue
}

// NewRewriter creates a rewriter bound to a catalogue.
func NewRewriter(cat *catalogue.Catalogue) *Rewriter {
	return &Rewriter{cat: cat}
}

// document is a parsed manifest. Formatting and comments are not preserved
// across a round-trip; key/value fidelity is what the workflow needs.
type document map[string]any

// load parses the manifest at path.
func load(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return doc, nil
}

// store serialises doc back to path, ensuring a trailing newline.
func store(doc document, path string) error {
	rendered, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialise manifest %s: %w", path, err)
	}
	if len(rendered) == 0 || rendered[len(rendered)-1] != '\n' {
		rendered = append(rendered, '\n')
	}
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

// table returns the nested table at the given key path, or nil when any
// level is missing or not a table.
func table(doc document, keys ...string) map[string]any {
	current := map[string]any(doc)
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}
