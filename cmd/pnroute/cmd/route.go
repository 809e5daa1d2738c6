package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/avelanda/pnroute/core"
	"github.com/avelanda/pnroute/netfile"
	"github.com/avelanda/pnroute/route"
)

var maxIter int

var routeCmd = &cobra.Command{
	Use:   "route <design.pnr>",
	Short: "Route every net of a design",
	Long: `Route parses a design file, builds its grid fabric and netlist, and runs
the negotiated-congestion router until every net is realised or the
iteration budget runs out.

The process exits non-zero when routing fails; the final database checksum
is printed either way, so equal-seed runs can be compared.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().IntVar(&maxIter, "max-iter", 0, "override the iteration budget")
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, err := loadDesign(args[0], log)
	if err != nil {
		return err
	}

	opts := []route.Option{route.WithLogger(log)}
	if maxIter > 0 {
		opts = append(opts, route.WithMaxIterations(maxIter))
	}

	res, err := route.Route(ctx, opts...)
	if res != nil {
		fmt.Printf("iterations: %d\n", res.Iterations)
		fmt.Printf("checksum: 0x%08x\n", res.Checksum)
	}
	if err != nil {
		if errors.Is(err, route.ErrGaveUp) {
			return fmt.Errorf("routing did not converge: %w", err)
		}

		return fmt.Errorf("routing failed: %w", err)
	}

	return nil
}

// loadDesign parses and builds a design file into a routing context.
func loadDesign(path string, log *zap.Logger) (*core.Context, error) {
	parser, err := netfile.NewParser()
	if err != nil {
		return nil, err
	}
	design, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	return netfile.Build(design, nil, core.WithSeed(seed), core.WithLogger(log))
}
