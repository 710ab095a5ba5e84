package sim

import (
	"context"
	"fmt"
	stdmath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/walkmesh/internal/loop"
	"github.com/Faultbox/walkmesh/pkg/collider"
	"github.com/Faultbox/walkmesh/pkg/math"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger for the simulation and its collider system.
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulation) { s.log = log }
}

// WithDeltaMax bounds the delta of a single tick.
func WithDeltaMax(d float64) Option {
	return func(s *Simulation) { s.deltaMax = d }
}

// Simulation wires a scenario's scene into a collider system and drives a
// player object through it on a frame loop.
type Simulation struct {
	scenario *Scenario
	log      *zap.Logger
	deltaMax float64

	system     *collider.System
	object     *collider.Object
	controller *Controller
	loop       *loop.Loop
	recorder   *Recorder

	useCache    bool
	cacheRadius float64
	cacheRef    math.Vec3
	cached      bool
}

// New builds the scene, binds a player object and registers the per-tick
// updaters: input, cache refresh, collision, recording.
func New(scn *Scenario, cfg collider.Config, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		scenario:    scn,
		log:         zap.NewNop(),
		deltaMax:    0.1,
		useCache:    cfg.System.UseCache,
		cacheRadius: cfg.System.CacheRadius,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.system = collider.NewSystem(cfg, collider.WithLogger(s.log.Named("collider")))
	if err := Populate(s.system, &scn.Scene); err != nil {
		return nil, err
	}

	s.object = collider.NewObject(cfg.Object)
	s.object.Bind(s.system)
	s.object.Position = scn.Player.Start()

	s.controller = NewController(s.object, scn.Player.Inputs, s.log)
	s.recorder = NewRecorder(s.object)

	s.loop = loop.New(s.deltaMax, loop.WithLogger(s.log))
	s.loop.Add(s.controller)
	s.loop.Add(loop.UpdaterFunc(s.refreshCache))
	s.loop.Add(loop.UpdaterFunc(s.object.Collide))
	s.loop.Add(s.recorder)

	s.log.Info("scenario loaded",
		zap.String("name", scn.Name),
		zap.Int("meshes", s.system.Len()),
		zap.Int("inputs", len(scn.Player.Inputs)),
		zap.Float64("duration", scn.Duration()),
	)
	return s, nil
}

// Populate builds every node of a scene description into sys. Floor
// entries go through AddFloor.
func Populate(sys *collider.System, d *scene.Description) error {
	entries, err := d.Build()
	if err != nil {
		return fmt.Errorf("building scene %q: %w", d.Name, err)
	}
	for _, e := range entries {
		if e.Floor {
			err = sys.AddFloor(e.Node)
		} else {
			err = sys.Add(e.Node, collider.MeshParams{})
		}
		if err != nil {
			return fmt.Errorf("adding %q: %w", e.Node.NodeName(), err)
		}
	}
	return nil
}

// System returns the collider system.
func (s *Simulation) System() *collider.System { return s.system }

// Object returns the player object.
func (s *Simulation) Object() *collider.Object { return s.object }

// Samples returns the recorded trace.
func (s *Simulation) Samples() []Sample { return s.recorder.Samples() }

// Ticks returns how many ticks of delta cover the scenario's inputs.
func (s *Simulation) Ticks(delta float64) int {
	if delta <= 0 {
		return 0
	}
	return int(stdmath.Ceil(s.scenario.Duration()/delta - segmentSlack))
}

// Run steps the simulation ticks times with a fixed delta and returns the
// trace. A non-positive ticks plays the whole input script.
func (s *Simulation) Run(ticks int, delta float64) []Sample {
	if ticks <= 0 {
		ticks = s.Ticks(delta)
	}
	for i := 0; i < ticks; i++ {
		s.loop.Step(delta)
	}
	s.logDone()
	return s.Samples()
}

// Play runs the simulation in real time, ticking every interval until the
// inputs are exhausted or the context is cancelled.
func (s *Simulation) Play(ctx context.Context, interval time.Duration) error {
	s.loop.Add(loop.UpdaterFunc(func(float64) {
		if s.controller.Done() {
			s.loop.Stop()
		}
	}))
	err := s.loop.Run(ctx, interval)
	s.logDone()
	return err
}

func (s *Simulation) refreshCache(float64) {
	if !s.useCache {
		return
	}
	p := s.object.Position
	if s.cached && p.Distance(s.cacheRef) <= s.cacheRadius/2 {
		return
	}
	s.system.Cache(p)
	s.cacheRef = p
	s.cached = true
	n, _ := s.system.Cached()
	s.log.Debug("cache refreshed", zap.Stringer("at", p), zap.Int("meshes", n))
}

func (s *Simulation) logDone() {
	s.log.Info("simulation finished",
		zap.Uint64("ticks", s.loop.Frames()),
		zap.Stringer("position", s.object.Position),
	)
}
