package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/data-releases/relprov/pkg/provision"
	"github.com/data-releases/relprov/pkg/tui"
)

// newUpCmd creates the up subcommand
func newUpCmd() *cobra.Command {
	var manifestPath, configPath string
	var plain, dryRun bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Provision the host",
		Long: `Check every requirement in the manifest and install whatever is
missing. Requirements that are already satisfied are left untouched.

The run is strictly sequential and fail-fast: system packages first
(python3 and pip must exist before any pip package), then pip packages,
stopping at the first error.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runUp(manifestPath, configPath, plain, dryRun)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to a requirements manifest (defaults to the built-in one)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a relprov config file")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the live view, print log lines instead")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be installed without installing")

	return cmd
}

// runUp provisions the host, optionally through the live view.
func runUp(manifestPath, configPath string, plain, dryRun bool) error {
	m, system, pipInstaller, err := setup(manifestPath, configPath)
	if err != nil {
		return err
	}

	if dryRun {
		p := provision.New(m, system, pipInstaller)
		steps, summary := p.Check()
		printCheckReport(steps, summary)
		if !summary.Satisfied() {
			return fmt.Errorf("%d requirement(s) would be installed", summary.Missing+summary.Errors)
		}
		return nil
	}

	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		p := provision.New(m, system, pipInstaller)
		_, err := p.Run()
		return err
	}

	steps, err := tui.Run(func(cb provision.ProgressCallback) ([]provision.Step, error) {
		p := provision.New(m, system, pipInstaller, provision.WithProgress(cb))
		return p.Run()
	})
	if err != nil {
		return err
	}

	installed := 0
	for _, step := range steps {
		if step.State == provision.StateInstalled {
			installed++
		}
	}
	fmt.Printf("Provisioned %d requirement(s), installed %d.\n", len(steps), installed)

	return nil
}
