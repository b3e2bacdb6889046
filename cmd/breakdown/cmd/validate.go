package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [DIR]",
	Short: "Check every snapshot in a directory from both roles",
	Long: `Compute the customer and provider breakdowns of every fixture in DIR
(default BREAKDOWN_FIXTURE_DIR) and report the warnings each view carries.
Exits non-zero when any view has warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := cfg.FixtureDir
	if len(args) == 1 {
		dir = args[0]
	}

	report, err := breakdownUC.Validate(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := printJSON(report); err != nil {
		return err
	}
	if report.ViewsWithIssues > 0 {
		return fmt.Errorf("%d of %d views carry warnings", report.ViewsWithIssues, 2*report.FixturesChecked)
	}
	return nil
}
