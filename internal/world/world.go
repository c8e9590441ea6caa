// Package world holds the scene graph of the sandbox: point masses
// ("particles") joined by rigid-length links ("sticks"), plus the editing
// operations, deep-copy snapshots, connected-component extraction, and
// the JSON scene codec.
//
// The package is purely a data model. Advancing the simulation is the
// engine package's job; rendering and input belong to the host shell.
//
// All mutation is synchronous and single-writer: a World must not be
// edited concurrently with itself or with an in-progress engine step.
package world

import "math"

const (
	// DefaultGridSize is the snap grid applied to requested particle
	// positions. Zero disables snapping.
	DefaultGridSize = 10.0

	// DefaultMinSpacing is the dedup radius: a new particle is rejected
	// if an existing one lies strictly closer than this to the snapped
	// location.
	DefaultMinSpacing = 5.0
)

// Particle is a point mass with position history. Velocity is implicit:
// (X-PrevX, Y-PrevY). FX/FY accumulate queued forces consumed by the next
// integration. ID is stable for the particle's lifetime and survives
// snapshot/restore.
type Particle struct {
	ID           int
	X, Y         float64
	PrevX, PrevY float64
	Locked       bool
	FX, FY       float64
}

// Stick is a fixed rest-length relation between two particles,
// referenced by ID rather than by pointer so that cloning and
// serialization need no identity maps.
type Stick struct {
	A, B       int
	RestLength float64
}

// World owns the particle arena and the stick list. Insertion order is
// the stable external index used by the scene codec.
type World struct {
	particles []*Particle
	sticks    []*Stick
	slots     map[int]int // particle ID -> index into particles
	nextID    int

	// GridSize and MinSpacing govern AddParticle snapping and dedup.
	// They are editing-boundary policy, not simulation state.
	GridSize   float64
	MinSpacing float64
}

// New returns an empty world with default editing policy.
func New() *World {
	return &World{
		slots:      make(map[int]int),
		GridSize:   DefaultGridSize,
		MinSpacing: DefaultMinSpacing,
	}
}

// Particles returns the arena in insertion order. Callers may mutate the
// particles (the engine does) but must not reorder or resize the slice.
func (w *World) Particles() []*Particle { return w.particles }

// Sticks returns the stick list in insertion order.
func (w *World) Sticks() []*Stick { return w.sticks }

// Particle looks up a particle by ID.
func (w *World) Particle(id int) (*Particle, bool) {
	i, ok := w.slots[id]
	if !ok {
		return nil, false
	}
	return w.particles[i], true
}

// AddParticle creates a particle at the requested location, snapped to
// the grid. It fails with ErrParticleTooClose if another particle lies
// within MinSpacing of the snapped point.
func (w *World) AddParticle(x, y float64, locked bool) (*Particle, error) {
	if w.GridSize > 0 {
		x = math.Round(x/w.GridSize) * w.GridSize
		y = math.Round(y/w.GridSize) * w.GridSize
	}
	for _, p := range w.particles {
		if math.Hypot(p.X-x, p.Y-y) < w.MinSpacing {
			return nil, ErrParticleTooClose
		}
	}
	return w.insertParticle(x, y, locked), nil
}

// insertParticle appends without snapping or dedup. Import and restore
// use it to re-create geometry verbatim.
func (w *World) insertParticle(x, y float64, locked bool) *Particle {
	p := &Particle{ID: w.nextID, X: x, Y: y, PrevX: x, PrevY: y, Locked: locked}
	w.nextID++
	w.slots[p.ID] = len(w.particles)
	w.particles = append(w.particles, p)
	return p
}

// AddStick joins two particles with a rest length equal to their current
// distance. At most one stick may join an unordered pair.
func (w *World) AddStick(a, b int) (*Stick, error) {
	pa, ok := w.Particle(a)
	if !ok {
		return nil, ErrUnknownParticle
	}
	pb, ok := w.Particle(b)
	if !ok {
		return nil, ErrUnknownParticle
	}
	return w.addStick(a, b, math.Hypot(pb.X-pa.X, pb.Y-pa.Y))
}

// AddStickWithLength joins two particles with an explicit rest length,
// as the scene codec requires on import.
func (w *World) AddStickWithLength(a, b int, length float64) (*Stick, error) {
	if _, ok := w.Particle(a); !ok {
		return nil, ErrUnknownParticle
	}
	if _, ok := w.Particle(b); !ok {
		return nil, ErrUnknownParticle
	}
	return w.addStick(a, b, length)
}

func (w *World) addStick(a, b int, length float64) (*Stick, error) {
	if a == b {
		return nil, ErrStickEndpoints
	}
	if w.HasStick(a, b) {
		return nil, ErrDuplicateStick
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, ErrZeroRestLength
	}
	st := &Stick{A: a, B: b, RestLength: length}
	w.sticks = append(w.sticks, st)
	return st, nil
}

// HasStick reports whether a stick joins the unordered pair (a, b).
func (w *World) HasStick(a, b int) bool {
	for _, st := range w.sticks {
		if (st.A == a && st.B == b) || (st.A == b && st.B == a) {
			return true
		}
	}
	return false
}

// RemoveParticle deletes a particle and every stick referencing it.
func (w *World) RemoveParticle(id int) error {
	i, ok := w.slots[id]
	if !ok {
		return ErrUnknownParticle
	}
	w.particles = append(w.particles[:i], w.particles[i+1:]...)
	delete(w.slots, id)
	for j := i; j < len(w.particles); j++ {
		w.slots[w.particles[j].ID] = j
	}

	kept := w.sticks[:0]
	for _, st := range w.sticks {
		if st.A != id && st.B != id {
			kept = append(kept, st)
		}
	}
	w.sticks = kept
	return nil
}

// RemoveStick deletes the stick joining the unordered pair, if any.
func (w *World) RemoveStick(a, b int) bool {
	for i, st := range w.sticks {
		if (st.A == a && st.B == b) || (st.A == b && st.B == a) {
			w.sticks = append(w.sticks[:i], w.sticks[i+1:]...)
			return true
		}
	}
	return false
}

// ApplyForce queues an impulse on a particle; the accumulator is
// consumed by the next integration step.
func (w *World) ApplyForce(id int, fx, fy float64) error {
	p, ok := w.Particle(id)
	if !ok {
		return ErrUnknownParticle
	}
	p.FX += fx
	p.FY += fy
	return nil
}

// MoveParticle repositions a particle directly, resetting its implicit
// velocity. This is the one operation allowed to move a locked particle.
func (w *World) MoveParticle(id int, x, y float64) error {
	p, ok := w.Particle(id)
	if !ok {
		return ErrUnknownParticle
	}
	p.X, p.Y = x, y
	p.PrevX, p.PrevY = x, y
	return nil
}
