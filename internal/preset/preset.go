// Package preset builds the starting scenes shipped with the sandbox.
// Coordinates assume the default 800x600 world.
package preset

import (
	"fmt"
	"sort"

	"github.com/TheBurgerCoder/verlet/internal/world"
)

// Builders maps preset names to scene constructors.
var Builders = map[string]func() *world.World{
	"rope":          Rope,
	"pendulum":      Pendulum,
	"net":           Net,
	"box":           Box,
	"wrecking-ball": WreckingBall,
}

// Get builds a fresh world for the named preset.
func Get(name string) (*world.World, error) {
	build, ok := Builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	return build(), nil
}

// List returns the preset names in sorted order.
func List() []string {
	names := make([]string, 0, len(Builders))
	for name := range Builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rope is a 12-segment chain hanging from a locked anchor.
func Rope() *world.World {
	w := world.New()
	prev := add(w, 400, 80, true)
	for i := 1; i <= 12; i++ {
		next := add(w, 400, 80+float64(i)*20, false)
		link(w, prev, next)
		prev = next
	}
	return w
}

// Pendulum is a 3-link chain released horizontally so it swings.
func Pendulum() *world.World {
	w := world.New()
	anchor := add(w, 400, 100, true)
	a := add(w, 440, 100, false)
	b := add(w, 480, 100, false)
	c := add(w, 520, 100, false)
	link(w, anchor, a)
	link(w, a, b)
	link(w, b, c)
	return w
}

// Net is a 9x6 mesh pinned along every other particle of its top row.
func Net() *world.World {
	const (
		cols    = 9
		rows    = 6
		spacing = 30.0
		left    = 280.0
		top     = 80.0
	)
	w := world.New()
	ids := make([][]int, rows)
	for r := 0; r < rows; r++ {
		ids[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			locked := r == 0 && c%2 == 0
			ids[r][c] = add(w, left+float64(c)*spacing, top+float64(r)*spacing, locked)
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				link(w, ids[r][c], ids[r][c+1])
			}
			if r+1 < rows {
				link(w, ids[r][c], ids[r+1][c])
			}
		}
	}
	return w
}

// Box is a cross-braced square dropped from mid-air with a sideways
// kick on one corner so it tumbles.
func Box() *world.World {
	w := world.New()
	a := add(w, 380, 100, false)
	b := add(w, 420, 100, false)
	c := add(w, 420, 140, false)
	d := add(w, 380, 140, false)
	link(w, a, b)
	link(w, b, c)
	link(w, c, d)
	link(w, d, a)
	link(w, a, c)
	link(w, b, d)
	_ = w.ApplyForce(a, 6, 0)
	return w
}

// WreckingBall is a braced square swinging from a 6-link chain.
func WreckingBall() *world.World {
	w := world.New()
	prev := add(w, 400, 60, true)
	for i := 1; i <= 6; i++ {
		next := add(w, 400+float64(i)*30, 60, false)
		link(w, prev, next)
		prev = next
	}
	a := prev
	b := add(w, 610, 60, false)
	c := add(w, 610, 90, false)
	d := add(w, 580, 90, false)
	link(w, a, b)
	link(w, b, c)
	link(w, c, d)
	link(w, d, a)
	link(w, a, c)
	link(w, b, d)
	return w
}

// add and link ignore rejections: preset coordinates are fixed and
// known not to collide with the grid or spacing rules.
func add(w *world.World, x, y float64, locked bool) int {
	p, _ := w.AddParticle(x, y, locked)
	return p.ID
}

func link(w *world.World, a, b int) {
	_, _ = w.AddStick(a, b)
}
