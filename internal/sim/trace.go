package sim

import (
	"github.com/Faultbox/walkmesh/pkg/collider"
	"github.com/Faultbox/walkmesh/pkg/encoding"
	"github.com/Faultbox/walkmesh/pkg/math"
)

// Sample is the object state after one tick.
type Sample struct {
	Tick     int       `yaml:"tick" toml:"tick"`
	Time     float64   `yaml:"time" toml:"time"`
	Position math.Vec3 `yaml:"position" toml:"position"`
	Motion   math.Vec3 `yaml:"motion" toml:"motion"`
}

// Recorder appends a Sample every time it is updated. Register it after
// the object so samples see committed state.
type Recorder struct {
	object  *collider.Object
	samples []Sample
	time    float64
}

// NewRecorder records the state of obj.
func NewRecorder(obj *collider.Object) *Recorder {
	return &Recorder{object: obj}
}

// Update records one sample.
func (r *Recorder) Update(delta float64) {
	r.time += delta
	r.samples = append(r.samples, Sample{
		Tick:     len(r.samples) + 1,
		Time:     r.time,
		Position: r.object.Position,
		Motion:   r.object.Motion,
	})
}

// Samples returns the recorded samples.
func (r *Recorder) Samples() []Sample { return r.samples }

// Trace is the file form of a recorded run.
type Trace struct {
	Scenario string   `yaml:"scenario" toml:"scenario"`
	Samples  []Sample `yaml:"samples" toml:"samples"`
}

// WriteTrace saves samples to path as YAML or TOML.
func WriteTrace(path, scenario string, samples []Sample) error {
	return encoding.WriteFile(path, Trace{Scenario: scenario, Samples: samples})
}
