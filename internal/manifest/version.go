// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace version lookup with diagnostics

package manifest

import (
	"fmt"
	"os"
	"strings"
)

// excerptMaxLines bounds the manifest excerpt attached to version
// diagnostics.
const excerptMaxLines = 8

// Version returns the declared workspace version from the root manifest.
// When the key is missing the error names the manifest path and the expected
// key path, with an excerpt of the [workspace] section to speed up
// debugging.
func (r *Rewriter) Version(manifestPath string) (string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %s: %w", manifestPath, err)
	}
	doc, err := load(manifestPath)
	if err != nil {
		return "", err
	}

	pkg := table(doc, "workspace", "package")
	if pkg != nil {
		if version, ok := pkg["version"].(string); ok {
			return version, nil
		}
	}

	message := fmt.Sprintf(
		"expected [workspace.package].version in %s; [workspace.package] must define a version for publish automation to run",
		manifestPath)
	if excerpt := workspaceExcerpt(string(data)); len(excerpt) > 0 {
		indented := make([]string, len(excerpt))
		for i, line := range excerpt {
			indented[i] = "    " + line
		}
		message = fmt.Sprintf("%s\n\nworkspace manifest excerpt:\n%s",
			message, strings.Join(indented, "\n"))
	}
	return "", fmt.Errorf("%s", message)
}

// workspaceExcerpt returns the lines around the [workspace] section header,
// starting one line before it and stopping at the excerpt bound or the next
// non-workspace section.
func workspaceExcerpt(manifestText string) []string {
	lines := strings.Split(manifestText, "\n")

	headerIndex := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "[workspace") {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil
	}

	start := headerIndex - 1
	if start < 0 {
		start = 0
	}
	end := headerIndex + 1
	for end < len(lines) && end-start < excerptMaxLines {
		stripped := strings.TrimSpace(lines[end])
		if strings.HasPrefix(stripped, "[") && !strings.HasPrefix(stripped, "[workspace") {
			break
		}
		end++
	}
	return lines[start:end]
}
