package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assetref/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	config  string
	verbose bool
	noColor bool
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		errors.PrintError(os.Stderr, errors.FromError(err, "A000"), verbose)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "assetref",
		Short: "Resolve, render and publish component asset references",
		Long: `assetref resolves the asset references of web components against
their module's resource root, computes the paths pages use to reach them,
and copies the referenced files into the output site.

Configuration is read from assetref.json or assetref.yaml in the current
directory or the closest parent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file (default: assetref.json in the project root)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		resolveCmd(flags),
		relpathCmd(flags),
		copyCmd(flags),
		initCmd(),
		versionCmd(),
	)

	return rootCmd
}

// exactArgs is cobra.ExactArgs reporting a coded CLI error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return errors.New("X001").
				WithDetail(fmt.Sprintf("%s expects %d argument(s), got %d", cmd.Name(), n, len(args))).
				WithSuggestion("Usage: " + cmd.UseLine())
		}
		return nil
	}
}

// minArgs is cobra.MinimumNArgs reporting a coded CLI error.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return errors.New("X001").
				WithDetail(fmt.Sprintf("%s expects at least %d argument(s)", cmd.Name(), n)).
				WithSuggestion("Usage: " + cmd.UseLine())
		}
		return nil
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
