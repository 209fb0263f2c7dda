package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"licensing/internal/application/models"
	"licensing/internal/application/service"
	"licensing/internal/ledger/memory"
	"licensing/internal/permit/fees"
	"licensing/pkg/requestcontext"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack a new license application into its two words",
	Example: `  # Pack a three month Asset Creation application submitted now
  licensectl pack --permit "Asset Creation" --reporting-frequency 2592000

  # Pin the submission time for reproducible output
  licensectl pack --permit "Asset Modification" --duration 31536000 --submitted 1700000000`,
	Args: cobra.NoArgs,
	RunE: packCmdRun,
}

type packFlags struct {
	permit               string
	duration             uint64
	reportingFrequency   uint64
	reportingGracePeriod uint64
	royaltyGracePeriod   uint64
	extraData            string
	submitted            int64
}

var packArgs packFlags

func init() {
	packCmd.Flags().StringVar(&packArgs.permit, "permit", "", "Permit category.")
	packCmd.Flags().Uint64Var(&packArgs.duration, "duration", fees.ThreeMonths, "License duration in seconds.")
	packCmd.Flags().Uint64Var(&packArgs.reportingFrequency, "reporting-frequency", 0, "Seconds between usage reports.")
	packCmd.Flags().Uint64Var(&packArgs.reportingGracePeriod, "reporting-grace-period", 0, "Seconds a report may be late.")
	packCmd.Flags().Uint64Var(&packArgs.royaltyGracePeriod, "royalty-grace-period", 0, "Seconds a royalty payment may be late.")
	packCmd.Flags().StringVar(&packArgs.extraData, "extra-data", "0", "Extra data as a decimal or 0x-prefixed hex integer.")
	packCmd.Flags().Int64Var(&packArgs.submitted, "submitted", 0, "Submission time as unix seconds. Defaults to now.")
	_ = packCmd.MarkFlagRequired("permit")
	rootCmd.AddCommand(packCmd)
}

func packCmdRun(cmd *cobra.Command, _ []string) error {
	extra, err := models.ParseUint256(packArgs.extraData)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), rootArgs.timeout)
	defer cancel()
	submitted := time.Now()
	if packArgs.submitted > 0 {
		submitted = time.Unix(packArgs.submitted, 0)
	}
	ctx = requestcontext.WithTime(ctx, submitted)

	permits, release, err := permitOracle(ctx)
	if err != nil {
		return err
	}
	defer release()

	res, err := service.New(fees.NewResolver(permits), memory.New()).Pack(ctx, &models.PackRequest{
		Permit:               packArgs.permit,
		Duration:             packArgs.duration,
		ReportingFrequency:   packArgs.reportingFrequency,
		ReportingGracePeriod: packArgs.reportingGracePeriod,
		RoyaltyGracePeriod:   packArgs.royaltyGracePeriod,
		ExtraData:            models.NewQuantity(extra),
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, res)
}
