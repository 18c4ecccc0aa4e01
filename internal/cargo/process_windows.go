// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Windows-specific process handling

//go:build windows

package cargo

import (
	"os/exec"
)

// setPlatformProcessGroup configures platform-specific process attributes.
// Windows has no Unix-style process groups; CommandContext terminates the
// process via TerminateProcess.
func setPlatformProcessGroup(cmd *exec.Cmd) {
}

// killProcessGroup kills the process. On Windows Process.Kill calls
// TerminateProcess, which is the best available option without a console.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
