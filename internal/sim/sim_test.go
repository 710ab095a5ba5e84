package sim

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/walkmesh/pkg/collider"
	"github.com/Faultbox/walkmesh/pkg/encoding"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

const (
	step       = 0.05
	rampHeight = 1.1547005383792515
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scn, err := LoadScenario(filepath.Join("testdata", name))
	require.NoError(t, err)
	return scn
}

func TestPopulate(t *testing.T) {
	scn := loadTestScenario(t, "ramp_wall.yaml")
	sys := collider.NewSystem(collider.DefaultConfig())
	require.NoError(t, Populate(sys, &scn.Scene))

	require.Equal(t, 3, sys.Len())
	meshes := sys.Meshes()
	assert.True(t, meshes[0].IsFloor())
	assert.False(t, meshes[1].IsFloor())
	assert.False(t, meshes[2].IsFloor())
}

func TestPopulateBadScene(t *testing.T) {
	d := &scene.Description{Name: "bad", Nodes: []scene.NodeSpec{{Name: "blob", Shape: "sphere"}}}
	err := Populate(collider.NewSystem(collider.DefaultConfig()), d)
	assert.ErrorIs(t, err, scene.ErrUnknownShape)
}

func TestRunRampAndWall(t *testing.T) {
	sim, err := New(loadTestScenario(t, "ramp_wall.yaml"), collider.DefaultConfig())
	require.NoError(t, err)

	samples := sim.Run(0, step)
	require.Len(t, samples, 80)

	maxY := 0.0
	prevX := -2.0
	for _, s := range samples {
		require.GreaterOrEqual(t, s.Position.Y, 0.0, "tick %d", s.Tick)
		require.LessOrEqual(t, s.Position.Y, rampHeight+1e-9, "tick %d", s.Tick)
		require.LessOrEqual(t, s.Position.X, 4.0+1e-9, "wall holds at tick %d", s.Tick)
		require.GreaterOrEqual(t, s.Position.X, prevX, "tick %d", s.Tick)
		prevX = s.Position.X
		maxY = max(maxY, s.Position.Y)
	}
	assert.Greater(t, maxY, 1.0, "climbed the ramp")

	last := samples[len(samples)-1]
	assert.Equal(t, 80, last.Tick)
	assert.InDelta(t, 4.0, last.Time, 1e-9)
	assert.InDelta(t, 4.0, last.Position.X, 1e-9)
	assert.Zero(t, last.Position.Y)
	assert.Zero(t, last.Position.Z)
}

func TestRunFrictionAfterInputs(t *testing.T) {
	sim, err := New(loadTestScenario(t, "ramp_wall.yaml"), collider.DefaultConfig())
	require.NoError(t, err)

	samples := sim.Run(110, step)
	require.Len(t, samples, 110)

	last := samples[len(samples)-1]
	assert.Zero(t, last.Motion.X)
	assert.InDelta(t, 4.0, last.Position.X, 1e-9)
}

func TestRunCacheMatchesFullQueries(t *testing.T) {
	full, err := New(loadTestScenario(t, "ramp_wall.yaml"), collider.DefaultConfig())
	require.NoError(t, err)

	cfg := collider.DefaultConfig()
	cfg.System.UseCache = true
	cfg.System.CacheRadius = 3
	cached, err := New(loadTestScenario(t, "ramp_wall.yaml"), cfg)
	require.NoError(t, err)

	want := full.Run(0, step)
	got := cached.Run(0, step)
	assert.Equal(t, want, got)

	_, ok := cached.System().Cached()
	assert.True(t, ok, "queries went through the cache")
}

func TestRunHop(t *testing.T) {
	sim, err := New(loadTestScenario(t, "hop.toml"), collider.DefaultConfig())
	require.NoError(t, err)

	samples := sim.Run(0, step)
	require.Len(t, samples, 32)

	peak := 0.0
	for _, s := range samples {
		require.GreaterOrEqual(t, s.Position.Y, 0.0)
		peak = max(peak, s.Position.Y)
	}
	assert.Greater(t, peak, 1.2)
	assert.Less(t, peak, 1.5)

	last := samples[len(samples)-1]
	assert.Zero(t, last.Position.Y)
	assert.Zero(t, last.Motion.Y)
}

func TestRunNoclip(t *testing.T) {
	cfg := collider.DefaultConfig()
	cfg.Object.Noclip = true
	sim, err := New(loadTestScenario(t, "ramp_wall.yaml"), cfg)
	require.NoError(t, err)

	last := sim.Run(0, step)[79]
	assert.InDelta(t, 6.0, last.Position.X, 1e-9, "passes through ramp and wall")
	assert.Zero(t, last.Position.Y)
}

func TestPlay(t *testing.T) {
	scn := &Scenario{
		Name:   "short",
		Scene:  scene.Description{Nodes: []scene.NodeSpec{{Name: "ground", Floor: true, Shape: "plane", Size: []float64{10, 0, 10}}}},
		Player: PlayerSpec{Inputs: []Input{{Duration: 0.05, Velocity: []float64{1, 0}}}},
	}
	sim, err := New(scn, collider.DefaultConfig(), WithDeltaMax(0.01))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, sim.Play(ctx, time.Millisecond))
	samples := sim.Samples()
	require.NotEmpty(t, samples)
	assert.Greater(t, samples[len(samples)-1].Position.X, 0.0)
	assert.Zero(t, samples[len(samples)-1].Position.Y)
}

func TestNewLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	_, err := New(loadTestScenario(t, "hop.toml"), collider.DefaultConfig(), WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("scenario loaded").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "hop", fields["name"])
	assert.Equal(t, int64(1), fields["meshes"])
}

func TestWriteTrace(t *testing.T) {
	sim, err := New(loadTestScenario(t, "hop.toml"), collider.DefaultConfig())
	require.NoError(t, err)
	samples := sim.Run(5, step)

	for _, name := range []string{"trace.yaml", "trace.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteTrace(path, "hop", samples))

			var got Trace
			require.NoError(t, encoding.ReadFile(path, &got))
			assert.Equal(t, "hop", got.Scenario)
			require.Len(t, got.Samples, 5)
			assert.Equal(t, samples[4].Tick, got.Samples[4].Tick)
			assert.InDelta(t, samples[4].Position.Y, got.Samples[4].Position.Y, 1e-12)
		})
	}
}
