// walkmesh is a CLI for inspecting collider scenes and running movement
// scenarios through them.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/walkmesh/internal/config"
	"github.com/Faultbox/walkmesh/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command, args := args[0], args[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "probe":
		err = cmdProbe(cfg, args)
	case "sim", "run":
		err = cmdSim(cfg, args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`walkmesh - triangle mesh collider and movement tool

Usage:
  walkmesh [flags] <command> [arguments]

Commands:
  info <scene>                 Show meshes, plane counts and bounds
  probe <scene> <x> <y> <z>    Query collisions, ceiling and floor at a point
  sim <scenario> [trace-out]   Run a scenario and print its trace

Flags:
  -config <file>     Config file (.yaml or .toml)
  -debug             Enable debug logging
  -noclip            Move without collision
  -cache             Query only meshes near the player
  -delta-max <sec>   Upper bound on a tick's delta
  -ticks <n>         Number of ticks to simulate

Examples:
  walkmesh info scenes/courtyard.yaml
  walkmesh probe scenes/courtyard.yaml 4 0.5 0
  walkmesh -ticks 240 sim scenes/ramp_walk.yaml trace.yaml`)
}
