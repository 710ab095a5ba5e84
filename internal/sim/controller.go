package sim

import (
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/walkmesh/pkg/collider"
)

// frictionPeriod is the time over which Friction removes its share of
// horizontal speed.
const frictionPeriod = 0.1

// restSpeed is the horizontal speed below which friction stops an object.
const restSpeed = 1e-3

// segmentSlack absorbs rounding when summing deltas against a duration.
const segmentSlack = 1e-9

// Controller plays an input script onto an object's motion.
type Controller struct {
	object *collider.Object
	inputs []Input
	log    *zap.Logger

	index   int
	elapsed float64
	started bool
}

// NewController creates a controller that drives obj through inputs.
func NewController(obj *collider.Object, inputs []Input, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{object: obj, inputs: inputs, log: log}
}

// Done reports whether every input has played out.
func (c *Controller) Done() bool { return c.index >= len(c.inputs) }

// Segment returns the index of the input being played.
func (c *Controller) Segment() int { return c.index }

// Update applies the current input, or friction once the script is over.
func (c *Controller) Update(delta float64) {
	if c.Done() {
		c.applyFriction(delta)
		return
	}

	in := c.inputs[c.index]
	if !c.started {
		c.started = true
		if in.Jump > 0 {
			c.object.Motion.Y = in.Jump
		}
		c.log.Debug("input",
			zap.Int("segment", c.index),
			zap.Float64s("velocity", in.Velocity),
			zap.Float64("jump", in.Jump),
		)
	}

	c.object.Motion.X, c.object.Motion.Z = in.Horizontal()

	c.elapsed += delta
	if c.elapsed >= in.Duration-segmentSlack {
		c.elapsed = 0
		c.started = false
		c.index++
	}
}

func (c *Controller) applyFriction(delta float64) {
	friction := c.object.Settings().Friction
	factor := 0.0
	if friction < 1 {
		factor = stdmath.Pow(1-max(friction, 0), delta/frictionPeriod)
	}

	m := &c.object.Motion
	m.X *= factor
	m.Z *= factor
	if stdmath.Hypot(m.X, m.Z) < restSpeed {
		m.X, m.Z = 0, 0
	}
}
