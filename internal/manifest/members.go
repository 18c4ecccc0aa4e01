// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace member pruning

package manifest

import (
	"path"
)

// PruneMembers removes workspace member entries that do not correspond to a
// catalogue package. It is a no-op when the manifest has no member list and
// only rewrites the file when the list actually changed.
func (r *Rewriter) PruneMembers(manifestPath string) error {
	doc, err := load(manifestPath)
	if err != nil {
		return err
	}

	workspace := table(doc, "workspace")
	if workspace == nil {
		return nil
	}
	members, ok := workspace["members"].([]any)
	if !ok {
		return nil
	}

	kept := make([]any, 0, len(members))
	for _, entry := range members {
		name, ok := entry.(string)
		if !ok {
			continue
		}
		if r.cat.Contains(path.Base(name)) {
			kept = append(kept, entry)
		}
	}

	if len(kept) == len(members) {
		return nil
	}
	workspace["members"] = kept
	return store(doc, manifestPath)
}
