package world

import (
	"errors"
	"math"
	"testing"
)

func TestAddParticleSnapsToGrid(t *testing.T) {
	w := New()

	p, err := w.AddParticle(403, 78, false)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if p.X != 400 || p.Y != 80 {
		t.Errorf("expected snapped position (400, 80), got (%f, %f)", p.X, p.Y)
	}
	if p.PrevX != p.X || p.PrevY != p.Y {
		t.Error("new particle should start with zero implicit velocity")
	}
}

func TestAddParticleRejectsNearDuplicate(t *testing.T) {
	w := New()

	if _, err := w.AddParticle(400, 80, false); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := w.AddParticle(402, 81, true)
	if !errors.Is(err, ErrParticleTooClose) {
		t.Errorf("expected ErrParticleTooClose, got %v", err)
	}
	if len(w.Particles()) != 1 {
		t.Errorf("expected 1 particle after rejection, got %d", len(w.Particles()))
	}
}

func TestAddStickRestLengthDefaultsToDistance(t *testing.T) {
	w := New()
	a, _ := w.AddParticle(100, 100, false)
	b, _ := w.AddParticle(100, 190, false)

	st, err := w.AddStick(a.ID, b.ID)
	if err != nil {
		t.Fatalf("add stick failed: %v", err)
	}

	if math.Abs(st.RestLength-90) > 1e-12 {
		t.Errorf("expected rest length 90, got %f", st.RestLength)
	}
}

func TestAddStickWithLengthKeepsLengthVerbatim(t *testing.T) {
	w := New()
	a, _ := w.AddParticle(100, 100, false)
	b, _ := w.AddParticle(100, 190, false)

	st, err := w.AddStickWithLength(a.ID, b.ID, 123.5)
	if err != nil {
		t.Fatalf("add stick failed: %v", err)
	}

	if st.RestLength != 123.5 {
		t.Errorf("expected rest length 123.5, got %f", st.RestLength)
	}
}

func TestAddStickRejections(t *testing.T) {
	w := New()
	a, _ := w.AddParticle(100, 100, false)
	b, _ := w.AddParticle(200, 100, false)

	if _, err := w.AddStick(a.ID, a.ID); !errors.Is(err, ErrStickEndpoints) {
		t.Errorf("self stick: expected ErrStickEndpoints, got %v", err)
	}
	if _, err := w.AddStick(a.ID, 999); !errors.Is(err, ErrUnknownParticle) {
		t.Errorf("missing endpoint: expected ErrUnknownParticle, got %v", err)
	}
	if _, err := w.AddStickWithLength(a.ID, b.ID, 0); !errors.Is(err, ErrZeroRestLength) {
		t.Errorf("zero length: expected ErrZeroRestLength, got %v", err)
	}
}

func TestAddStickDedupIsUnordered(t *testing.T) {
	w := New()
	a, _ := w.AddParticle(100, 100, false)
	b, _ := w.AddParticle(200, 100, false)

	if _, err := w.AddStick(a.ID, b.ID); err != nil {
		t.Fatalf("first stick failed: %v", err)
	}

	_, err := w.AddStick(b.ID, a.ID)
	if !errors.Is(err, ErrDuplicateStick) {
		t.Errorf("expected ErrDuplicateStick for reversed pair, got %v", err)
	}
	if len(w.Sticks()) != 1 {
		t.Errorf("expected 1 stick, got %d", len(w.Sticks()))
	}
}

func TestRemoveParticleCascadesSticks(t *testing.T) {
	w := New()
	a, _ := w.AddParticle(100, 100, false)
	b, _ := w.AddParticle(200, 100, false)
	c, _ := w.AddParticle(300, 100, false)
	w.AddStick(a.ID, b.ID)
	w.AddStick(b.ID, c.ID)

	if err := w.RemoveParticle(b.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if len(w.Particles()) != 2 {
		t.Errorf("expected 2 particles, got %d", len(w.Particles()))
	}
	if len(w.Sticks()) != 0 {
		t.Errorf("expected cascade to remove both sticks, got %d", len(w.Sticks()))
	}

	// Lookup by ID must survive the arena compaction.
	if got, ok := w.Particle(c.ID); !ok || got.X != 300 {
		t.Errorf("particle %d lookup broken after removal", c.ID)
	}
}

func TestApplyForceAccumulates(t *testing.T) {
	w := New()
	p, _ := w.AddParticle(100, 100, false)

	w.ApplyForce(p.ID, 1, 2)
	w.ApplyForce(p.ID, 3, -1)

	if p.FX != 4 || p.FY != 1 {
		t.Errorf("expected accumulated force (4, 1), got (%f, %f)", p.FX, p.FY)
	}

	if err := w.ApplyForce(999, 1, 1); !errors.Is(err, ErrUnknownParticle) {
		t.Errorf("expected ErrUnknownParticle, got %v", err)
	}
}

func TestMoveParticleResetsVelocityAndMovesLocked(t *testing.T) {
	w := New()
	p, _ := w.AddParticle(100, 100, true)
	p.PrevX, p.PrevY = 90, 95

	if err := w.MoveParticle(p.ID, 250, 260); err != nil {
		t.Fatalf("move failed: %v", err)
	}

	if p.X != 250 || p.Y != 260 {
		t.Errorf("expected position (250, 260), got (%f, %f)", p.X, p.Y)
	}
	if p.PrevX != 250 || p.PrevY != 260 {
		t.Error("direct repositioning should reset implicit velocity")
	}
}

func TestRemoveStick(t *testing.T) {
	w := New()
	a, _ := w.AddParticle(100, 100, false)
	b, _ := w.AddParticle(200, 100, false)
	w.AddStick(a.ID, b.ID)

	if !w.RemoveStick(b.ID, a.ID) {
		t.Error("expected reversed-pair removal to succeed")
	}
	if w.RemoveStick(a.ID, b.ID) {
		t.Error("expected second removal to report missing stick")
	}
}
