// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Flag/environment resolution tests

package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCommand() *cobra.Command {
	c := &cobra.Command{Use: "publish-check"}
	c.Flags().IntVar(&timeoutSecs, "timeout-secs", defaultTimeoutSecs, "")
	c.Flags().BoolVar(&keepTmp, "keep-tmp", false, "")
	c.Flags().BoolVar(&live, "live", false, "")
	return c
}

func TestResolveTimeoutDefault(t *testing.T) {
	c := newTestCommand()

	secs, err := resolveTimeout(c, newEnv())
	if err != nil {
		t.Fatalf("resolveTimeout() error = %v", err)
	}
	if secs != defaultTimeoutSecs {
		t.Errorf("timeout = %d, want %d", secs, defaultTimeoutSecs)
	}
}

func TestResolveTimeoutFromEnvironment(t *testing.T) {
	t.Setenv("PUBLISH_CHECK_TIMEOUT_SECS", "1200")
	c := newTestCommand()

	secs, err := resolveTimeout(c, newEnv())
	if err != nil {
		t.Fatalf("resolveTimeout() error = %v", err)
	}
	if secs != 1200 {
		t.Errorf("timeout = %d, want 1200", secs)
	}
}

func TestResolveTimeoutFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("PUBLISH_CHECK_TIMEOUT_SECS", "1200")
	c := newTestCommand()
	if err := c.Flags().Set("timeout-secs", "120"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	secs, err := resolveTimeout(c, newEnv())
	if err != nil {
		t.Fatalf("resolveTimeout() error = %v", err)
	}
	if secs != 120 {
		t.Errorf("timeout = %d, want 120", secs)
	}
}

func TestResolveTimeoutMalformedEnvironment(t *testing.T) {
	t.Setenv("PUBLISH_CHECK_TIMEOUT_SECS", "soon")
	c := newTestCommand()

	_, err := resolveTimeout(c, newEnv())
	if err == nil {
		t.Fatal("resolveTimeout() should reject non-integer values")
	}
	if !strings.Contains(err.Error(), "must be an integer") {
		t.Errorf("error = %v", err)
	}
}

func TestResolveBoolFromEnvironment(t *testing.T) {
	t.Setenv("PUBLISH_CHECK_KEEP_TMP", "1")
	c := newTestCommand()

	if !resolveBool(c, newEnv(), "keep-tmp", "keep_tmp", keepTmp) {
		t.Error("keep-tmp should be true from the environment")
	}
}

func TestResolveBoolFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("PUBLISH_CHECK_LIVE", "true")
	c := newTestCommand()
	if err := c.Flags().Set("live", "false"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	if resolveBool(c, newEnv(), "live", "live", live) {
		t.Error("an explicit --live=false must beat the environment")
	}
}

func TestResolveBoolDefault(t *testing.T) {
	c := newTestCommand()

	if resolveBool(c, newEnv(), "live", "live", live) {
		t.Error("live should default to false")
	}
}
