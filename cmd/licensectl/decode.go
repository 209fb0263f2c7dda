package main

import (
	"github.com/spf13/cobra"

	"licensing/internal/licensee/codec"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [hex data]",
	Short: "Decode contract account data into licensee fields",
	Args:  cobra.ExactArgs(1),
	RunE:  decodeCmdRun,
}

type decodeFlags struct {
	usable bool
}

var decodeArgs decodeFlags

func init() {
	decodeCmd.Flags().BoolVar(&decodeArgs.usable, "usable", false, "Usable flag reported next to the data.")
	rootCmd.AddCommand(decodeCmd)
}

func decodeCmdRun(cmd *cobra.Command, args []string) error {
	licensee, err := codec.Decode([]byte(args[0]), decodeArgs.usable)
	if err != nil {
		return err
	}
	return printJSON(cmd, licensee)
}
