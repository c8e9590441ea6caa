package world

import (
	"encoding/json"
	"fmt"
	"math"
)

// Scene is the serialized form of a world. Stick endpoints are positional
// indices into the Particles slice at serialization time; Length is the
// persisted rest length and is re-applied verbatim on import, never
// recomputed from positions.
type Scene struct {
	Particles []SceneParticle `json:"particles"`
	Sticks    []SceneStick    `json:"sticks"`
}

type SceneParticle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Locked bool    `json:"locked"`
}

type SceneStick struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Length float64 `json:"length"`
}

// sceneWire mirrors Scene with pointer slices so decoding can tell a
// missing field from an empty one.
type sceneWire struct {
	Particles *[]SceneParticle `json:"particles"`
	Sticks    *[]SceneStick    `json:"sticks"`
}

// Scene serializes the whole world.
func (w *World) Scene() Scene {
	return w.sceneOf(w.particles, w.sticks)
}

// SceneOf serializes just the given particles (for partial export, e.g.
// a connected component) plus every stick with both endpoints among
// them. IDs must exist; order follows the arena, not the argument.
func (w *World) SceneOf(ids []int) (Scene, error) {
	keep := make(map[int]bool, len(ids))
	for _, id := range ids {
		if _, ok := w.Particle(id); !ok {
			return Scene{}, ErrUnknownParticle
		}
		keep[id] = true
	}

	particles := make([]*Particle, 0, len(keep))
	for _, p := range w.particles {
		if keep[p.ID] {
			particles = append(particles, p)
		}
	}
	sticks := make([]*Stick, 0)
	for _, st := range w.sticks {
		if keep[st.A] && keep[st.B] {
			sticks = append(sticks, st)
		}
	}
	return w.sceneOf(particles, sticks), nil
}

func (w *World) sceneOf(particles []*Particle, sticks []*Stick) Scene {
	index := make(map[int]int, len(particles))
	s := Scene{
		Particles: make([]SceneParticle, len(particles)),
		Sticks:    make([]SceneStick, len(sticks)),
	}
	for i, p := range particles {
		index[p.ID] = i
		s.Particles[i] = SceneParticle{X: p.X, Y: p.Y, Locked: p.Locked}
	}
	for i, st := range sticks {
		s.Sticks[i] = SceneStick{A: index[st.A], B: index[st.B], Length: st.RestLength}
	}
	return s
}

// Encode renders the scene as indented JSON.
func (s Scene) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// DecodeScene parses and validates a serialized scene. Both top-level
// fields must be present and type-consistent; any defect is reported as
// ErrMalformedScene before anything touches a live world.
func DecodeScene(data []byte) (Scene, error) {
	var wire sceneWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return Scene{}, fmt.Errorf("%w: %v", ErrMalformedScene, err)
	}
	if wire.Particles == nil {
		return Scene{}, fmt.Errorf("%w: missing particles field", ErrMalformedScene)
	}
	if wire.Sticks == nil {
		return Scene{}, fmt.Errorf("%w: missing sticks field", ErrMalformedScene)
	}
	s := Scene{Particles: *wire.Particles, Sticks: *wire.Sticks}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Validate checks the structural invariants of a scene: finite
// coordinates, stick indices in range, distinct endpoints, positive
// finite rest lengths, and at most one stick per unordered pair.
func (s Scene) Validate() error {
	for i, p := range s.Particles {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("%w: particle %d: non-finite position", ErrMalformedScene, i)
		}
	}
	seen := make(map[[2]int]bool, len(s.Sticks))
	for i, st := range s.Sticks {
		if st.A < 0 || st.A >= len(s.Particles) || st.B < 0 || st.B >= len(s.Particles) {
			return fmt.Errorf("%w: stick %d: endpoint index out of range", ErrMalformedScene, i)
		}
		if st.A == st.B {
			return fmt.Errorf("%w: stick %d: identical endpoints", ErrMalformedScene, i)
		}
		if !(st.Length > 0) || math.IsInf(st.Length, 0) {
			return fmt.Errorf("%w: stick %d: rest length must be positive", ErrMalformedScene, i)
		}
		key := [2]int{st.A, st.B}
		if st.B < st.A {
			key = [2]int{st.B, st.A}
		}
		if seen[key] {
			return fmt.Errorf("%w: stick %d: duplicate pair", ErrMalformedScene, i)
		}
		seen[key] = true
	}
	return nil
}

// Import appends a validated scene into the world as one atomic delta
// and returns the IDs assigned to the imported particles. On any error
// the world is left completely unmodified. Imported geometry is taken
// verbatim: no grid snapping, no spacing dedup.
func (w *World) Import(s Scene) ([]int, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ids := make([]int, len(s.Particles))
	for i, sp := range s.Particles {
		ids[i] = w.insertParticle(sp.X, sp.Y, sp.Locked).ID
	}
	for _, st := range s.Sticks {
		// Safe to append directly: endpoints are fresh IDs and the
		// payload already passed pair/length validation.
		w.sticks = append(w.sticks, &Stick{A: ids[st.A], B: ids[st.B], RestLength: st.Length})
	}
	return ids, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
