package main

import (
	"github.com/spf13/cobra"

	"licensing/internal/application/models"
	"licensing/internal/application/packing"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack [first word] [second word]",
	Short: "Decode two packed words into the application fields",
	Example: `  # Submission date 1700000000, every other field zero
  licensectl unpack 0x6553f100 0x0`,
	Args: cobra.ExactArgs(2),
	RunE: unpackCmdRun,
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}

func unpackCmdRun(cmd *cobra.Command, args []string) error {
	a, err := models.ParseUint256(args[0])
	if err != nil {
		return err
	}
	b, err := models.ParseUint256(args[1])
	if err != nil {
		return err
	}

	rec := packing.Unpack(packing.Words{A: *a, B: *b})
	return printJSON(cmd, models.ViewOf(&rec))
}
