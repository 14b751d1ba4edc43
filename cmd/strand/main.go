package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌┬┐┬─┐┌─┐┌┐┌┌┬┐
  ╚═╗ │ ├┬┘├─┤│││ ││
  ╚═╝ ┴ ┴└─┴ ┴┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "strand",
		Short: "Fine-grained reactive state for Go",
		Long: `Strand is a fine-grained reactive state runtime for Go.

Signals hold values, memos derive values, and effects react to
changes. Reads inside a computation are tracked automatically, so
dependents recompute without manual subscription bookkeeping.

  • Typed signal handles over a generational store
  • Derived values with automatic dependency tracking
  • Re-entrancy protection for self-referential updates
  • Prometheus and OpenTelemetry instrumentation
  • Live inspection server for development`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Strand ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
