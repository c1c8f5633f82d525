// Package main provides the relprov CLI for provisioning data-releases
// build hosts.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for relprov
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "relprov",
		Short: "Data-Releases Host Provisioner",
		Long: `relprov converges a Debian-family host onto the requirements of the
data-releases calendar builder: the Python runtime and pip installed
system-wide, and the icalendar and iso8601 libraries installed for the
service account.

Provisioning is idempotent: satisfied requirements are logged and left
alone, missing ones are installed exactly once, and the run stops at the
first failure.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newUpCmd(),
		newCheckCmd(),
		newRequirementsCmd(),
	)

	return rootCmd
}
