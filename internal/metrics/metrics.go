// Package metrics provides per-step observations over a simulated world.
package metrics

import (
	"math"

	"github.com/TheBurgerCoder/verlet/internal/world"
)

// Metric observes the world once per step and reduces to a single value.
type Metric interface {
	Name() string
	Observe(w *world.World, t float64)
	Value() float64
	Reset()
}

// Strain averages the relative constraint violation |dist-rest|/rest
// across all sticks and all observed steps. Zero means every stick sat
// at its rest length for the whole run.
type Strain struct {
	name    string
	total   float64
	samples int
}

func NewStrain() *Strain {
	return &Strain{name: "strain"}
}

func (s *Strain) Name() string { return s.name }

func (s *Strain) Observe(w *world.World, t float64) {
	sticks := w.Sticks()
	if len(sticks) == 0 {
		return
	}
	sum := 0.0
	for _, st := range sticks {
		sum += stickStrain(st, w)
	}
	s.total += sum / float64(len(sticks))
	s.samples++
}

func (s *Strain) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Strain) Reset() {
	s.total = 0
	s.samples = 0
}

// MaxStrain tracks the worst single-stick relative violation seen.
type MaxStrain struct {
	name string
	max  float64
}

func NewMaxStrain() *MaxStrain {
	return &MaxStrain{name: "max_strain"}
}

func (m *MaxStrain) Name() string { return m.name }

func (m *MaxStrain) Observe(w *world.World, t float64) {
	for _, st := range w.Sticks() {
		if s := stickStrain(st, w); s > m.max {
			m.max = s
		}
	}
}

func (m *MaxStrain) Value() float64 { return m.max }

func (m *MaxStrain) Reset() { m.max = 0 }

// Kinetic averages the total kinetic energy, with velocity taken
// implicitly from the position pair and unit mass per particle.
type Kinetic struct {
	name    string
	total   float64
	samples int
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(w *world.World, t float64) {
	sum := 0.0
	for _, p := range w.Particles() {
		vx := p.X - p.PrevX
		vy := p.Y - p.PrevY
		sum += 0.5 * (vx*vx + vy*vy)
	}
	k.total += sum
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *Kinetic) Reset() {
	k.total = 0
	k.samples = 0
}

// OutOfBounds counts particle-steps observed outside the clamped region.
// After a correct engine step it stays at zero; a nonzero value means
// something moved a particle between the clamp and the observation.
type OutOfBounds struct {
	name          string
	width, height float64
	margin        float64
	count         int
}

func NewOutOfBounds(width, height, margin float64) *OutOfBounds {
	return &OutOfBounds{name: "out_of_bounds", width: width, height: height, margin: margin}
}

func (o *OutOfBounds) Name() string { return o.name }

func (o *OutOfBounds) Observe(w *world.World, t float64) {
	for _, p := range w.Particles() {
		if p.X < o.margin || p.X > o.width-o.margin || p.Y < o.margin || p.Y > o.height-o.margin {
			o.count++
		}
	}
}

func (o *OutOfBounds) Value() float64 { return float64(o.count) }

func (o *OutOfBounds) Reset() { o.count = 0 }

func stickStrain(st *world.Stick, w *world.World) float64 {
	a, ok := w.Particle(st.A)
	if !ok {
		return 0
	}
	b, ok := w.Particle(st.B)
	if !ok {
		return 0
	}
	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	return math.Abs(dist-st.RestLength) / st.RestLength
}
