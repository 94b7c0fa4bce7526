package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath         string
	flagBase         string
	flagHead         string
	flagRemote       string
	flagConfig       string
	flagOutput       string
	flagShowVariable string
	flagVerbosity    string
)

// rootCmd is the top-level command for gitrange.
var rootCmd = &cobra.Command{
	Use:   "gitrange",
	Short: "Resolve the base/head commit range for a CI run",
	Long: "gitrange determines the base and head commits a CI run should compare,\n" +
		"guarantees their merge base is locally available (deepening shallow\n" +
		"history as needed), and reports the minimum fetch depth that would\n" +
		"have sufficed.",
	// Default action is resolve.
	RunE: resolveRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVar(&flagBase, "base", "", "explicit base ref (default: from the CI event)")
	rootCmd.PersistentFlags().StringVar(&flagHead, "head", "", "explicit head ref (default: from the CI event)")
	rootCmd.PersistentFlags().StringVar(&flagRemote, "remote", "", "remote to fetch history from (default: origin)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, github, or empty for key=value")
	rootCmd.PersistentFlags().StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. MergeBase, Depth)")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
