// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// publish-check CLI

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leynos/publish-check/internal/cargo"
	"github.com/leynos/publish-check/internal/catalogue"
	"github.com/leynos/publish-check/internal/export"
	"github.com/leynos/publish-check/internal/manifest"
	"github.com/leynos/publish-check/internal/publish"
)

// defaultTimeoutSecs bounds each build-tool invocation when neither the flag
// nor the environment overrides it.
const defaultTimeoutSecs = 900

var (
	timeoutSecs int
	keepTmp     bool
	live        bool
	configPath  string
)

// rootCmd runs the publish-check workflow directly, without subcommands.
var rootCmd = &cobra.Command{
	Use:   "publish-check",
	Short: "Validate or publish workspace packages in release order",
	Long: `publish-check exports the committed tree into a temporary workspace,
rewrites inter-package dependency declarations, and drives the package
manager against each publishable package in dependency order.

The default mode packages and type-checks every package to validate
publish readiness. With --live the real publish commands run instead,
treating "already published" registry rejections as success so the run
can be re-invoked idempotently after a partial failure.

Examples:
  publish-check
  publish-check --timeout-secs 1200 --keep-tmp
  publish-check --live
  PUBLISH_CHECK_LIVE=1 publish-check`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeRun(cmd)
	},
}

// Execute runs the root command. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVar(&timeoutSecs, "timeout-secs", defaultTimeoutSecs,
		"Timeout in seconds for each build-tool command (env: PUBLISH_CHECK_TIMEOUT_SECS)")
	rootCmd.Flags().BoolVar(&keepTmp, "keep-tmp", false,
		"Preserve the temporary workspace after the run (env: PUBLISH_CHECK_KEEP_TMP)")
	rootCmd.Flags().BoolVar(&live, "live", false,
		"Publish packages to the registry instead of validating (env: PUBLISH_CHECK_LIVE)")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"Path to a catalogue YAML file overriding the built-in package list")
}

// newEnv binds the PUBLISH_CHECK_* environment variables. Flags always win;
// the environment only fills in values the flags left at their defaults.
func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PUBLISH_CHECK")
	_ = v.BindEnv("timeout_secs")
	_ = v.BindEnv("keep_tmp")
	_ = v.BindEnv("live")
	return v
}

// resolveTimeout applies the flag > environment > default precedence and
// rejects non-integer environment values before any workspace is created.
func resolveTimeout(cmd *cobra.Command, v *viper.Viper) (int, error) {
	if cmd.Flags().Changed("timeout-secs") {
		return timeoutSecs, nil
	}
	if !v.IsSet("timeout_secs") {
		return defaultTimeoutSecs, nil
	}
	raw := v.GetString("timeout_secs")
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("PUBLISH_CHECK_TIMEOUT_SECS must be an integer, got %q", raw)
	}
	return secs, nil
}

// resolveBool applies the same precedence for a boolean flag/env pair.
func resolveBool(cmd *cobra.Command, v *viper.Viper, flagName, envKey string, flagValue bool) bool {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if v.IsSet(envKey) {
		return v.GetBool(envKey)
	}
	return flagValue
}

// loadCatalogue returns the configured catalogue, defaulting to the built-in
// workspace package list.
func loadCatalogue() (*catalogue.Catalogue, error) {
	if configPath == "" {
		return catalogue.Default(), nil
	}
	return catalogue.Load(configPath)
}

func executeRun(cmd *cobra.Command) error {
	env := newEnv()

	secs, err := resolveTimeout(cmd, env)
	if err != nil {
		return err
	}
	keep := resolveBool(cmd, env, "keep-tmp", "keep_tmp", keepTmp)
	liveMode := resolveBool(cmd, env, "live", "live", live)

	cat, err := loadCatalogue()
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "publish-check",
	})

	orchestrator := publish.New(
		cat,
		export.NewExporter(cwd),
		manifest.NewRewriter(cat),
		cargo.NewRunner(cat.Tool, logger, os.Stdout, os.Stderr),
		logger,
	)

	return orchestrator.Run(publish.Options{
		KeepTemp: keep,
		Timeout:  time.Duration(secs) * time.Second,
		Live:     liveMode,
	})
}
