package preset

import (
	"math"
	"testing"

	"github.com/TheBurgerCoder/verlet/internal/engine"
)

func TestGetUnknownPreset(t *testing.T) {
	if _, err := Get("nonexistent"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestListCoversBuilders(t *testing.T) {
	names := List()
	if len(names) != len(Builders) {
		t.Fatalf("expected %d names, got %d", len(Builders), len(names))
	}
	for _, name := range names {
		if _, err := Get(name); err != nil {
			t.Errorf("listed preset %q not buildable: %v", name, err)
		}
	}
}

func TestEveryPresetHasAnchorOrBody(t *testing.T) {
	for _, name := range List() {
		w, err := Get(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(w.Particles()) == 0 {
			t.Errorf("%s: empty scene", name)
		}
		if len(w.Sticks()) == 0 {
			t.Errorf("%s: no sticks", name)
		}
	}
}

func TestEveryPresetSimulatesStably(t *testing.T) {
	for _, name := range List() {
		w, err := Get(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		e := engine.New(engine.DefaultWidth, engine.DefaultHeight)
		for i := 0; i < 200; i++ {
			e.Step(w, 1, 0.5)
		}

		r := e.Tuning.Margin
		for _, p := range w.Particles() {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				t.Fatalf("%s: particle %d went NaN", name, p.ID)
			}
			if p.X < r || p.X > e.Width-r || p.Y < r || p.Y > e.Height-r {
				t.Errorf("%s: particle %d left bounds: (%f, %f)", name, p.ID, p.X, p.Y)
			}
		}
	}
}
