// Package engine advances a world.World through time: damped Verlet
// integration, iterative distance-constraint relaxation, and boundary
// collision with restitution, in that fixed order.
package engine

// Default tuning values. Damping and the velocity clamp are numerical
// stabilization, not physics; Iterations trades constraint convergence
// against per-frame cost. All of them are quality knobs, not
// correctness requirements.
const (
	DefaultDamping     = 0.975
	DefaultMaxVelocity = 50.0
	DefaultIterations  = 5
	DefaultMargin      = 5.0
	DefaultBounce      = 0.5

	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Tuning collects the simulation quality knobs.
type Tuning struct {
	// Damping scales implicit velocity each step so long chains do not
	// accumulate unbounded energy.
	Damping float64

	// MaxVelocity clamps each velocity component to guard against
	// degenerate configurations.
	MaxVelocity float64

	// Iterations is the number of relaxation passes per step.
	Iterations int

	// Margin keeps particles this far inside the world edges.
	Margin float64

	// Bounce is the restitution applied to the normal velocity
	// component on boundary contact.
	Bounce float64
}

// DefaultTuning returns the stock knob settings.
func DefaultTuning() Tuning {
	return Tuning{
		Damping:     DefaultDamping,
		MaxVelocity: DefaultMaxVelocity,
		Iterations:  DefaultIterations,
		Margin:      DefaultMargin,
		Bounce:      DefaultBounce,
	}
}

// Engine applies the simulation step to a world within [0,Width]x[0,Height].
type Engine struct {
	Width  float64
	Height float64
	Tuning Tuning
}

// New returns an engine for the given bounds with default tuning.
func New(width, height float64) *Engine {
	return &Engine{Width: width, Height: height, Tuning: DefaultTuning()}
}
