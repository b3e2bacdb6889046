package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"booking-breakdown/internal/domain"
	"booking-breakdown/internal/usecase"
)

var (
	computeRole string
	computeUnit string
)

var computeCmd = &cobra.Command{
	Use:   "compute FIXTURE",
	Short: "Compute the breakdown of one snapshot",
	Long: `Compute the breakdown summary of a transaction snapshot and print it as JSON.
The role and unit type default to the snapshot's own, then to the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVarP(&computeRole, "role", "r", "", "viewer role (customer or provider)")
	computeCmd.Flags().StringVarP(&computeUnit, "unit", "u", "", "unit type (night, day or units)")
}

func runCompute(cmd *cobra.Command, args []string) error {
	req := usecase.ComputeRequest{Path: args[0]}
	if computeRole != "" {
		role, err := domain.ParseRole(computeRole)
		if err != nil {
			return err
		}
		req.Role = &role
	}
	if computeUnit != "" {
		unitType, err := domain.ParseUnitType(computeUnit)
		if err != nil {
			return err
		}
		req.UnitType = &unitType
	}

	summary, err := breakdownUC.Compute(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("breakdown failed: %w", err)
	}
	return printJSON(summary)
}
