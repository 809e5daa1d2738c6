package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool
	seed    uint64
)

var rootCmd = &cobra.Command{
	Use:   "pnroute",
	Short: "pnroute - negotiated-congestion signal router",
	Long: `pnroute routes the nets of a textual design over a grid routing fabric
using a negotiated-congestion router with rip-up and reroute.

Examples:
  pnroute route design.pnr --seed 1     # Route a design
  pnroute route design.pnr -v           # Route with progress logging
  pnroute delay design.pnr --from 0,0 --to 7,7`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 selects the default)")
}

// newLogger builds the command logger: human-readable when verbose,
// silent otherwise.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}
