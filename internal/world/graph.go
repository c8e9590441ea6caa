package world

// Component returns the connected component reachable from the seed
// particle via any chain of sticks: every reachable particle (seed
// included) and every stick with both endpoints inside the set. Both
// slices come back in arena insertion order. A seed with no incident
// sticks yields the singleton component.
func (w *World) Component(seed int) ([]*Particle, []*Stick, error) {
	if _, ok := w.Particle(seed); !ok {
		return nil, nil, ErrUnknownParticle
	}

	adj := make(map[int][]int, len(w.particles))
	for _, st := range w.sticks {
		adj[st.A] = append(adj[st.A], st.B)
		adj[st.B] = append(adj[st.B], st.A)
	}

	visited := map[int]bool{seed: true}
	queue := []int{seed}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range adj[id] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	particles := make([]*Particle, 0, len(visited))
	for _, p := range w.particles {
		if visited[p.ID] {
			particles = append(particles, p)
		}
	}
	sticks := make([]*Stick, 0)
	for _, st := range w.sticks {
		if visited[st.A] && visited[st.B] {
			sticks = append(sticks, st)
		}
	}
	return particles, sticks, nil
}
