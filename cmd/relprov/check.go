package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/data-releases/relprov/pkg/provision"
	"github.com/data-releases/relprov/pkg/tui"
)

// newCheckCmd creates the check subcommand
func newCheckCmd() *cobra.Command {
	var manifestPath, configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report requirement status without installing",
		Long: `Query every requirement in the manifest and report whether it is
installed. Nothing is modified. Exits non-zero when any requirement is
missing or a query failed.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCheck(manifestPath, configPath)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to a requirements manifest (defaults to the built-in one)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a relprov config file")

	return cmd
}

// runCheck reports requirement status.
func runCheck(manifestPath, configPath string) error {
	m, system, pipInstaller, err := setup(manifestPath, configPath)
	if err != nil {
		return err
	}

	p := provision.New(m, system, pipInstaller)
	steps, summary := p.Check()
	printCheckReport(steps, summary)

	if !summary.Satisfied() {
		return fmt.Errorf("%d requirement(s) missing, %d check(s) failed", summary.Missing, summary.Errors)
	}

	return nil
}

// printCheckReport renders a styled per-requirement status report.
func printCheckReport(steps []provision.Step, summary provision.Summary) {
	fmt.Println(tui.TitleStyle.Render("Requirement status"))

	for _, step := range steps {
		label := fmt.Sprintf("%s (%s)", step.Requirement.Name, step.Installer)

		switch step.State {
		case provision.StatePresent:
			fmt.Printf("  %s %s\n", tui.SuccessStyle.Render("✓"), label)
		case provision.StateMissing:
			fmt.Printf("  %s %s  %s\n", tui.WarningStyle.Render("•"), label, tui.DimStyle.Render("not installed"))
		case provision.StateFailed:
			fmt.Printf("  %s %s  %s\n", tui.ErrorStyle.Render("✗"), label, tui.ErrorStyle.Render(step.Err.Error()))
		default:
			fmt.Printf("  %s %s\n", tui.DimStyle.Render("?"), label)
		}
	}

	fmt.Printf("\n%d present, %d missing, %d errors\n", summary.Present, summary.Missing, summary.Errors)
}
