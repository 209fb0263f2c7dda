package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"licensing/internal/application/models"
	"licensing/internal/permit/fees"
)

var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Print the license fee of a permit over a duration",
	Example: `  # Price an Asset Creation license for one year
  licensectl fee --permit "Asset Creation" --duration 31536000`,
	Args: cobra.NoArgs,
	RunE: feeCmdRun,
}

type feeFlags struct {
	permit   string
	duration uint64
}

var feeArgs feeFlags

func init() {
	feeCmd.Flags().StringVar(&feeArgs.permit, "permit", "", "Permit category.")
	feeCmd.Flags().Uint64Var(&feeArgs.duration, "duration", fees.ThreeMonths,
		fmt.Sprintf("License duration in seconds, one of %v.", fees.Durations()))
	_ = feeCmd.MarkFlagRequired("permit")
	rootCmd.AddCommand(feeCmd)
}

func feeCmdRun(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()

	permits, release, err := permitOracle(ctx)
	if err != nil {
		return err
	}
	defer release()

	fee, err := fees.NewResolver(permits).Calculate(ctx, feeArgs.permit, feeArgs.duration)
	if err != nil {
		return err
	}
	return printJSON(cmd, models.FeeResult{
		Permit:     feeArgs.permit,
		Duration:   feeArgs.duration,
		LicenseFee: models.NewQuantity(fee),
	})
}
