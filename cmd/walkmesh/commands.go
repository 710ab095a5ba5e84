package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/Faultbox/walkmesh/internal/config"
	"github.com/Faultbox/walkmesh/internal/logger"
	"github.com/Faultbox/walkmesh/internal/sim"
	"github.com/Faultbox/walkmesh/pkg/collider"
	"github.com/Faultbox/walkmesh/pkg/math"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

var errUsage = errors.New("wrong number of arguments")

// loadSystem builds a collider system from a scene description file.
func loadSystem(cfg *config.Config, path string) (*collider.System, error) {
	desc, err := scene.LoadFile(path)
	if err != nil {
		return nil, err
	}
	sys := collider.NewSystem(cfg.Collider, collider.WithLogger(logger.Named("collider")))
	if err := sim.Populate(sys, desc); err != nil {
		return nil, err
	}
	return sys, nil
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: walkmesh info <scene>")
		return errUsage
	}

	sys, err := loadSystem(cfg, args[0])
	if err != nil {
		return err
	}

	meshes := sys.Meshes()
	planes := 0
	floors := 0

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLANES\tFLOOR\tMIN\tMAX")
	for _, m := range meshes {
		b := m.Box()
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%s\t%s\n", m.ID(), m.Name(), m.PlaneCount(), m.IsFloor(), b.Min(), b.Max())
		planes += m.PlaneCount()
		if m.IsFloor() {
			floors++
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nMeshes: %d (%d floor)\n", len(meshes), floors)
	fmt.Printf("Planes: %d\n", planes)
	return nil
}

func cmdProbe(cfg *config.Config, args []string) error {
	if len(args) != 4 {
		fmt.Fprintln(os.Stderr, "Usage: walkmesh probe <scene> <x> <y> <z>")
		return errUsage
	}

	var xyz [3]float64
	for i, s := range args[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("coordinate %q: %w", s, err)
		}
		xyz[i] = v
	}
	point := math.V3(xyz[0], xyz[1], xyz[2])

	sys, err := loadSystem(cfg, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Point: %s\n", point)

	collisions := sys.Collisions(point)
	fmt.Printf("Collisions: %d\n", len(collisions))
	for _, m := range collisions {
		fmt.Printf("  %s (%s)\n", m.Name(), m.ID())
	}

	if c, ok := sys.CeilingPlane(point); ok {
		fmt.Printf("Ceiling: %.3f (normal %s)\n", c.Y, c.Plane.Normal)
	} else {
		fmt.Println("Ceiling: none")
	}

	fmt.Printf("Floor: %.3f\n", sys.Floor(point))
	return nil
}

func cmdSim(cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "Usage: walkmesh sim <scenario> [trace-out]")
		return errUsage
	}

	scn, err := sim.LoadScenario(args[0])
	if err != nil {
		return err
	}

	s, err := sim.New(scn, cfg.Collider,
		sim.WithLogger(logger.Named("sim")),
		sim.WithDeltaMax(cfg.Simulation.DeltaMax),
	)
	if err != nil {
		return err
	}

	samples := s.Run(cfg.Simulation.Ticks, cfg.Simulation.Delta())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICK\tTIME\tPOSITION\tMOTION")
	for _, smp := range samples {
		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\n", smp.Tick, smp.Time, smp.Position, smp.Motion)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(args) == 2 {
		if err := sim.WriteTrace(args[1], scn.Name, samples); err != nil {
			return err
		}
		fmt.Printf("\nTrace written to %s\n", args[1])
	}
	return nil
}
