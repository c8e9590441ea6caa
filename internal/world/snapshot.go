package world

// Snapshot is an independent deep copy of a world, used to stash the
// editor's graph before simulating and to bring it back afterward.
//
// Policy: snapshots are reusable. Restore deep-copies again, so the same
// snapshot may be restored any number of times, and mutating a restored
// world never perturbs the snapshot it came from.
type Snapshot struct {
	particles []Particle
	sticks    []Stick
	nextID    int

	gridSize   float64
	minSpacing float64
}

// Snapshot captures a deep copy of the world. Because sticks reference
// particles by stable ID, copying needs no identity mapping.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		particles:  make([]Particle, len(w.particles)),
		sticks:     make([]Stick, len(w.sticks)),
		nextID:     w.nextID,
		gridSize:   w.GridSize,
		minSpacing: w.MinSpacing,
	}
	for i, p := range w.particles {
		s.particles[i] = *p
	}
	for i, st := range w.sticks {
		s.sticks[i] = *st
	}
	return s
}

// Restore builds a fresh, independently mutable world from the snapshot.
func (s *Snapshot) Restore() *World {
	w := &World{
		particles:  make([]*Particle, len(s.particles)),
		sticks:     make([]*Stick, len(s.sticks)),
		slots:      make(map[int]int, len(s.particles)),
		nextID:     s.nextID,
		GridSize:   s.gridSize,
		MinSpacing: s.minSpacing,
	}
	for i := range s.particles {
		p := s.particles[i]
		w.particles[i] = &p
		w.slots[p.ID] = i
	}
	for i := range s.sticks {
		st := s.sticks[i]
		w.sticks[i] = &st
	}
	return w
}
