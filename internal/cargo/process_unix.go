// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Unix-specific process group handling for timeout kills

//go:build !windows

package cargo

import (
	"os/exec"
	"syscall"
)

// setPlatformProcessGroup configures the command to run in its own process
// group so a timeout can take down every child the build tool spawned.
func setPlatformProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcessGroup kills the entire process group associated with the
// command, falling back to the single process when the group lookup fails.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}

	pgid, err := syscall.Getpgid(cmd.Process.Pid)
	if err != nil {
		return cmd.Process.Kill()
	}

	// Negative PGID signals the whole group.
	return syscall.Kill(-pgid, syscall.SIGKILL)
}
