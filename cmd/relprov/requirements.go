package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRequirementsCmd creates the requirements subcommand
func newRequirementsCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "List manifest requirements",
		Long:  `List every requirement in the manifest in the order it will be provisioned.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRequirements(manifestPath)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to a requirements manifest (defaults to the built-in one)")

	return cmd
}

// runRequirements lists the manifest entries.
func runRequirements(manifestPath string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	fmt.Printf("Found %d requirements:\n\n", len(m.Requirements))

	for _, req := range m.Requirements {
		reason := req.Reason
		if reason == "" {
			reason = "(no reason given)"
		}
		fmt.Printf("  - %s [%s]: %s\n", req.Name, req.Installer, reason)
	}

	return nil
}
