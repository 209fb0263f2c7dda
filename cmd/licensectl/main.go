package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"licensing/internal/ledger/evm"
	"licensing/internal/permit/fees"
	"licensing/internal/permit/oracle"
)

var VERSION = "0.0.0-dev.0"

var rootCmd = &cobra.Command{
	Use:           "licensectl",
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	Short:         "Offline tools for license applications and licensee records",
	Long: `licensectl packs and unpacks license applications, encodes and decodes
licensee records and prices permits. Everything runs locally unless --rpc
points at a node serving the License contract.`,
}

type rootFlags struct {
	timeout        time.Duration
	rpcURL         string
	licenseAddress string
}

var rootArgs = rootFlags{
	timeout: 30 * time.Second,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&rootArgs.timeout, "timeout", rootArgs.timeout,
		"The length of time to wait before giving up on a ledger call.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.rpcURL, "rpc", "",
		"JSON-RPC URL of a node. When empty every permit is treated as registered.")
	rootCmd.PersistentFlags().StringVar(&rootArgs.licenseAddress, "license-address", "",
		"Address of the License contract, required with --rpc.")
	rootCmd.SetOut(os.Stdout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrf("✗ %v\n", err)
		os.Exit(1)
	}
}

// permitOracle returns the existence check used for pricing and a release func.
func permitOracle(ctx context.Context) (fees.PermitOracle, func(), error) {
	if rootArgs.rpcURL == "" {
		return oracle.Static(true), func() {}, nil
	}
	if rootArgs.licenseAddress == "" {
		return nil, nil, fmt.Errorf("--license-address is required with --rpc")
	}
	client, err := evm.Dial(ctx, rootArgs.rpcURL, rootArgs.licenseAddress, evm.WithTimeout(rootArgs.timeout))
	if err != nil {
		return nil, nil, err
	}
	return oracle.NewLedger(client), client.Close, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
