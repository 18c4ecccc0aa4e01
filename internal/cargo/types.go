// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Command runner types

package cargo

import (
	"time"
)

// CacheHomeEnv is the environment variable pointing the build tool at the
// run-scoped cache directory so invocations never touch the developer's
// global cache.
const CacheHomeEnv = "CARGO_HOME"

// Context describes where and how to run one build-tool command: the package
// it belongs to, its working directory, environment overrides, and the
// wall-clock timeout. Derived fresh per package per command.
type Context struct {
	Package string
	Dir     string
	Env     map[string]string
	Timeout time.Duration
}

// Result captures one command invocation: the argument vector, the exit
// status, and the captured output streams. It is consumed immediately by
// success/failure handling and then discarded.
type Result struct {
	Argv     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// FailureClassifier inspects a failed command. Returning true marks the
// failure as handled, suppressing the runner's default fatal behaviour so
// the caller can decide whether execution continues.
type FailureClassifier func(pkg string, result Result) bool
