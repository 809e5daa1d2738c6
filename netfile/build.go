package netfile

import (
	"errors"
	"fmt"

	"github.com/avelanda/pnroute/core"
	"github.com/avelanda/pnroute/grid"
)

// Sentinel errors for design validation.
var (
	// ErrNoDevice indicates a design without a device statement.
	ErrNoDevice = errors.New("netfile: design has no device statement")
	// ErrDuplicateDevice indicates more than one device statement.
	ErrDuplicateDevice = errors.New("netfile: more than one device statement")
	// ErrUnknownBel indicates a pin or net referenced an undeclared bel.
	ErrUnknownBel = errors.New("netfile: bel not declared")
	// ErrDuplicateNet indicates a net name declared twice.
	ErrDuplicateNet = errors.New("netfile: net already defined")
)

// Build validates a parsed design and assembles a routing context over a
// grid fabric. Fabric options (gridOpts) and context options (seed, logger)
// are forwarded unchanged.
func Build(f *File, gridOpts []grid.Option, ctxOpts ...core.ContextOption) (*core.Context, error) {
	var deviceStmt *DeviceStmt
	for _, stmt := range f.Statements {
		if stmt.Device == nil {
			continue
		}
		if deviceStmt != nil {
			return nil, ErrDuplicateDevice
		}
		deviceStmt = stmt.Device
	}
	if deviceStmt == nil {
		return nil, ErrNoDevice
	}

	dev, err := grid.NewDevice(deviceStmt.Width, deviceStmt.Height, gridOpts...)
	if err != nil {
		return nil, err
	}

	// First pass: fabric geometry (bels, pins, blocks), building the cell
	// per bel that net statements will reference.
	bels := make(map[string]core.Bel)
	cells := make(map[string]*core.Cell)
	for _, stmt := range f.Statements {
		switch {
		case stmt.Bel != nil:
			b, err := dev.AddBel(stmt.Bel.Name, stmt.Bel.X, stmt.Bel.Y)
			if err != nil {
				return nil, err
			}
			bels[stmt.Bel.Name] = b
			cells[stmt.Bel.Name] = &core.Cell{
				Name: core.CellID(stmt.Bel.Name),
				Type: "BEL",
				Bel:  b,
			}
		case stmt.Pin != nil:
			b, ok := bels[stmt.Pin.Bel]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownBel, stmt.Pin.Bel)
			}
			dir := grid.PinInput
			if stmt.Pin.Dir == "out" {
				dir = grid.PinOutput
			}
			if err := dev.AddPin(b, core.PortPin(stmt.Pin.Name), dir); err != nil {
				return nil, err
			}
		case stmt.Block != nil:
			for y := stmt.Block.Y1; y <= stmt.Block.Y2; y++ {
				for x := stmt.Block.X1; x <= stmt.Block.X2; x++ {
					if err := dev.Block(x, y); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	ctx := core.NewContext(dev, ctxOpts...)

	// Second pass: nets.
	for _, stmt := range f.Statements {
		if stmt.Net == nil {
			continue
		}
		if _, dup := ctx.Nets[core.NetID(stmt.Net.Name)]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNet, stmt.Net.Name)
		}

		net := core.NewNet(core.NetID(stmt.Net.Name))

		driver, err := resolvePinRef(cells, stmt.Net.Drive)
		if err != nil {
			return nil, err
		}
		net.Driver = driver

		for _, sink := range stmt.Net.Sinks {
			user, err := resolvePinRef(cells, sink)
			if err != nil {
				return nil, err
			}
			net.Users = append(net.Users, user)
		}

		if err := ctx.AddNet(net); err != nil {
			return nil, err
		}
	}

	return ctx, nil
}

// resolvePinRef turns a BEL.PIN reference into a PortRef against the cell
// registry.
func resolvePinRef(cells map[string]*core.Cell, ref *PinRef) (core.PortRef, error) {
	cell, ok := cells[ref.Bel]
	if !ok {
		return core.PortRef{}, fmt.Errorf("%w: %q", ErrUnknownBel, ref.Bel)
	}

	return core.PortRef{Cell: cell, Port: core.PortPin(ref.Pin)}, nil
}
