// Package commands implements the semrel CLI commands using cobra.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "0.0.0-dev"

var rootCmd = &cobra.Command{
	Use:     "semrel",
	Short:   "Infer the next semantic version from Conventional Commit history",
	Version: Version,
	Long: `semrel walks a project's git history in Conventional Commits form,
classifies each commit's version-bump strength, stops at the nearest
historical release boundary that matches the pending bump, and reports
the resulting next version and release notes.`,
}

// Execute runs the root command, exiting 1 on any error surfaced from the
// core (spec §6.3's exit-code mapping — every core error kind maps to the
// same exit code; only the message differs).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("project", "C", ".", "project directory to run against")
	rootCmd.PersistentFlags().StringSliceP("rule", "r", nil, "category=bump rule override, repeatable")
	rootCmd.PersistentFlags().String("bump", "", "force the next version's bump kind, bypassing history")
	rootCmd.PersistentFlags().String("config", "", "explicit path to a .semrel.toml rules file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log verbosity: debug, info, warn, or error")

	_ = viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))
	_ = viper.BindPFlag("rule", rootCmd.PersistentFlags().Lookup("rule"))
	_ = viper.BindPFlag("bump", rootCmd.PersistentFlags().Lookup("bump"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}
