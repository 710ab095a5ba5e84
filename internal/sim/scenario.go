// Package sim runs scripted character movement through a collider scene.
package sim

import (
	"errors"
	"fmt"

	"github.com/Faultbox/walkmesh/pkg/encoding"
	"github.com/Faultbox/walkmesh/pkg/math"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

var (
	ErrNoInputs        = errors.New("scenario has no inputs")
	ErrInvalidDuration = errors.New("input duration must be positive")
	ErrInvalidVelocity = errors.New("input velocity must have 2 components")
	ErrInvalidStart    = errors.New("player position must have 3 components")
)

// Scenario is a scene plus a scripted player.
type Scenario struct {
	Name   string            `yaml:"name" toml:"name"`
	Scene  scene.Description `yaml:"scene" toml:"scene"`
	Player PlayerSpec        `yaml:"player" toml:"player"`
}

// PlayerSpec places the player and lists its inputs in playback order.
type PlayerSpec struct {
	Position []float64 `yaml:"position" toml:"position"`
	Inputs   []Input   `yaml:"inputs" toml:"inputs"`
}

// Input holds a horizontal velocity for Duration seconds. Jump, when
// positive, sets the vertical motion once as the segment begins.
type Input struct {
	Duration float64   `yaml:"duration" toml:"duration"`
	Velocity []float64 `yaml:"velocity,omitempty" toml:"velocity,omitempty"` // [x, z]
	Jump     float64   `yaml:"jump,omitempty" toml:"jump,omitempty"`
}

// LoadScenario reads and validates a scenario from a YAML or TOML file.
func LoadScenario(path string) (*Scenario, error) {
	var s Scenario
	if err := encoding.ReadFile(path, &s); err != nil {
		return nil, fmt.Errorf("loading scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks the player script. Scene errors surface when it is built.
func (s *Scenario) Validate() error {
	if n := len(s.Player.Position); n != 0 && n != 3 {
		return ErrInvalidStart
	}
	if len(s.Player.Inputs) == 0 {
		return ErrNoInputs
	}
	for i, in := range s.Player.Inputs {
		if in.Duration <= 0 {
			return fmt.Errorf("input %d: %w", i, ErrInvalidDuration)
		}
		if n := len(in.Velocity); n != 0 && n != 2 {
			return fmt.Errorf("input %d: %w", i, ErrInvalidVelocity)
		}
	}
	return nil
}

// Duration returns the total length of the input script in seconds.
func (s *Scenario) Duration() float64 {
	var total float64
	for _, in := range s.Player.Inputs {
		total += in.Duration
	}
	return total
}

// Start returns the player's start position, the origin when unset.
func (p PlayerSpec) Start() math.Vec3 {
	if len(p.Position) != 3 {
		return math.Vec3{}
	}
	return math.V3(p.Position[0], p.Position[1], p.Position[2])
}

// Horizontal returns the input velocity in the XZ plane.
func (in Input) Horizontal() (x, z float64) {
	if len(in.Velocity) != 2 {
		return 0, 0
	}
	return in.Velocity[0], in.Velocity[1]
}
