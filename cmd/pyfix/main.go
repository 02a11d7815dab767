package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyfix/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pyfix",
	Short: "Python lint and autofix tool",
	Long:  `pyfix finds redundant dictionary lookups in Python sources and rewrites them to use the already-bound loop variable`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum diagnostics per file (0=config default)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers for directories (0=config default)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "bypass the lint result cache")
	rootCmd.PersistentFlags().String("config", "", "path to pyfix.toml (default: nearest manifest up the tree)")
	rootCmd.PersistentFlags().Bool("timings", false, "print per-stage timing information")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
