package main

import (
	"fmt"
	"io"
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
  ┌─┐┌─┐┬─┐┌┬┐┬┌─┬┌┬┐
  ├┤ │ │├┬┘│││├┴┐│ │
  └  └─┘┴└─┴ ┴┴ ┴┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "formkit",
		Short: "Form state management for Go web applications",
		Long: `Formkit manages form state on the server.

A form is a reactive state store: values, per-field errors, touched
flags and submission state, validated against a schema on every
change. Formkit ships with:

  • Schema validation with first-error-per-field reporting
  • Live form sessions over WebSocket with SSR
  • Submission storage in memory or S3
  • Rule schemas loadable from YAML documents`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		fillCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		glyph(os.Stderr, ansiRed, "Error:", "%s", err)
		os.Exit(1)
	}
}

// ansi color codes for terminal output.
const (
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// glyph writes a colored status mark followed by the message.
func glyph(w io.Writer, color, mark, format string, args ...any) {
	fmt.Fprintf(w, "%s%s%s %s\n", color, mark, ansiReset, fmt.Sprintf(format, args...))
}

// printBanner prints the formkit ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

func success(format string, args ...any) {
	glyph(os.Stdout, ansiGreen, "✓", format, args...)
}

// info prints an indented plain line under the preceding status message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func warn(format string, args ...any) {
	glyph(os.Stdout, ansiYellow, "⚠", format, args...)
}

func errorMsg(format string, args ...any) {
	glyph(os.Stderr, ansiRed, "✗", format, args...)
}
