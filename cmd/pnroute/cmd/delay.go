package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avelanda/pnroute/grid"
	"github.com/avelanda/pnroute/route"
)

var (
	delayFrom string
	delayTo   string
)

var delayCmd = &cobra.Command{
	Use:   "delay <design.pnr>",
	Short: "Report the best achievable routing delay between two nodes",
	Long: `Delay parses a design file and runs one strict-mode search between two
fabric nodes, ignoring the netlist, reporting the best achievable delay.

Examples:
  pnroute delay design.pnr --from 0,0 --to 7,7`,
	Args: cobra.ExactArgs(1),
	RunE: runDelay,
}

func init() {
	delayCmd.Flags().StringVar(&delayFrom, "from", "", "source node as X,Y")
	delayCmd.Flags().StringVar(&delayTo, "to", "", "destination node as X,Y")
	delayCmd.MarkFlagRequired("from")
	delayCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(delayCmd)
}

func runDelay(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, err := loadDesign(args[0], log)
	if err != nil {
		return err
	}
	dev, ok := ctx.Device().(*grid.Device)
	if !ok {
		return fmt.Errorf("delay: design is not backed by a grid fabric")
	}

	fx, fy, err := parseCoord(delayFrom)
	if err != nil {
		return err
	}
	tx, ty, err := parseCoord(delayTo)
	if err != nil {
		return err
	}
	src, err := dev.NodeWire(fx, fy)
	if err != nil {
		return err
	}
	dst, err := dev.NodeWire(tx, ty)
	if err != nil {
		return err
	}

	delay, reached := route.ActualRouteDelay(ctx, src, dst)
	if !reached {
		return fmt.Errorf("delay: no route from %s to %s", dev.WireName(src), dev.WireName(dst))
	}
	fmt.Printf("delay %s -> %s: %d\n", dev.WireName(src), dev.WireName(dst), delay)

	return nil
}

// parseCoord splits an X,Y flag value.
func parseCoord(s string) (x, y int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("delay: coordinate %q is not X,Y", s)
	}
	x, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("delay: coordinate %q: %w", s, err)
	}
	y, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("delay: coordinate %q: %w", s, err)
	}

	return x, y, nil
}
