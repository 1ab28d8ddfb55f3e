// Propsheet inspects and edits values against a hierarchical property schema.
//
// A schema (YAML, JSON or HCL) lists properties and group markers; propsheet
// renders it as a collapsible property sheet, edits a values file in a
// terminal UI and validates values from scripts.
//
// Usage:
//
//	propsheet [command] [flags]
//
// See 'propsheet --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/propsheet/internal/logging"
	"github.com/muurk/propsheet/internal/version"
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "propsheet",
	Short: "Hierarchical property sheet editor",
	Long: `Inspect, edit and validate values against a property schema.

A schema is an ordered list of properties and group markers. Groups nest,
collapse and expand; object properties open a nested sheet of their own.
Values are read from and written to YAML or JSON files.`,
	Version:      version.Version,
	SilenceUsage: true,
	Example: `  # Edit values interactively
  propsheet edit --schema panel.hcl --values panel.yaml

  # Reopen the last files used for an instance
  propsheet edit --id panel

  # Check values from a script
  propsheet validate --schema panel.hcl --values panel.yaml`,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "propsheet %s\n%s\n", version.Full(), version.Platform())
	},
}
