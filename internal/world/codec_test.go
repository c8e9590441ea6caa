package world

import (
	"errors"
	"math"
	"testing"
)

func buildTestWorld(t *testing.T) (*World, [3]int) {
	t.Helper()
	w := New()
	a, _ := w.AddParticle(100, 100, true)
	b, _ := w.AddParticle(100, 190, false)
	c, _ := w.AddParticle(200, 190, false)
	if _, err := w.AddStick(a.ID, b.ID); err != nil {
		t.Fatalf("stick a-b: %v", err)
	}
	if _, err := w.AddStick(b.ID, c.ID); err != nil {
		t.Fatalf("stick b-c: %v", err)
	}
	return w, [3]int{a.ID, b.ID, c.ID}
}

func TestSceneRoundTrip(t *testing.T) {
	w, _ := buildTestWorld(t)

	data, err := w.Scene().Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	scene, err := DecodeScene(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	w2 := New()
	if _, err := w2.Import(scene); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(w2.Particles()) != 3 || len(w2.Sticks()) != 2 {
		t.Fatalf("expected 3 particles/2 sticks, got %d/%d", len(w2.Particles()), len(w2.Sticks()))
	}
	if !w2.Particles()[0].Locked {
		t.Error("expected first particle locked after round trip")
	}
	if got := w2.Sticks()[0].RestLength; got != 90 {
		t.Errorf("expected rest length 90 after round trip, got %f", got)
	}
}

func TestMalformedImportLeavesWorldUntouched(t *testing.T) {
	w, _ := buildTestWorld(t)

	payloads := map[string]string{
		"missing sticks": `{"particles": [{"x": 1, "y": 2, "locked": false}]}`,
		"missing both":   `{}`,
		"wrong type":     `{"particles": "nope", "sticks": []}`,
		"not json":       `{{{`,
		"bad index":      `{"particles": [{"x": 1, "y": 2, "locked": false}], "sticks": [{"a": 0, "b": 5, "length": 10}]}`,
		"self stick":     `{"particles": [{"x": 1, "y": 2, "locked": false}], "sticks": [{"a": 0, "b": 0, "length": 10}]}`,
		"zero length":    `{"particles": [{"x": 1, "y": 2, "locked": false}, {"x": 3, "y": 4, "locked": false}], "sticks": [{"a": 0, "b": 1, "length": 0}]}`,
		"duplicate pair": `{"particles": [{"x": 1, "y": 2, "locked": false}, {"x": 3, "y": 4, "locked": false}], "sticks": [{"a": 0, "b": 1, "length": 5}, {"a": 1, "b": 0, "length": 5}]}`,
		"non-finite":     `{"particles": [{"x": 1e999, "y": 2, "locked": false}], "sticks": []}`,
	}

	for name, payload := range payloads {
		scene, err := DecodeScene([]byte(payload))
		if err == nil {
			// Decode may pass for payloads whose defect only shows at
			// import validation; either stage must reject.
			_, err = w.Import(scene)
		}
		if !errors.Is(err, ErrMalformedScene) {
			t.Errorf("%s: expected ErrMalformedScene, got %v", name, err)
		}
		if len(w.Particles()) != 3 || len(w.Sticks()) != 2 {
			t.Fatalf("%s: world mutated by failed import: %d particles, %d sticks",
				name, len(w.Particles()), len(w.Sticks()))
		}
	}
}

func TestImportAppendsAsDelta(t *testing.T) {
	w, _ := buildTestWorld(t)

	scene, err := DecodeScene([]byte(
		`{"particles": [{"x": 500, "y": 100, "locked": false}, {"x": 500, "y": 150, "locked": false}],
		  "sticks": [{"a": 0, "b": 1, "length": 50}]}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	ids, err := w.Import(scene)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("expected 2 imported IDs, got %d", len(ids))
	}
	if len(w.Particles()) != 5 || len(w.Sticks()) != 3 {
		t.Errorf("expected 5 particles/3 sticks after delta, got %d/%d",
			len(w.Particles()), len(w.Sticks()))
	}

	last := w.Sticks()[2]
	if last.A != ids[0] || last.B != ids[1] {
		t.Errorf("imported stick endpoints not remapped: got (%d, %d), want (%d, %d)",
			last.A, last.B, ids[0], ids[1])
	}
	if last.RestLength != 50 {
		t.Errorf("imported rest length not verbatim: got %f", last.RestLength)
	}
}

func TestSceneOfSubset(t *testing.T) {
	w, ids := buildTestWorld(t)
	// Detached particle, not part of the exported subset.
	d, _ := w.AddParticle(600, 400, false)

	sub, err := w.SceneOf([]int{ids[0], ids[1]})
	if err != nil {
		t.Fatalf("subset export failed: %v", err)
	}

	if len(sub.Particles) != 2 {
		t.Fatalf("expected 2 particles in subset, got %d", len(sub.Particles))
	}
	if len(sub.Sticks) != 1 {
		t.Fatalf("expected 1 stick with both endpoints in subset, got %d", len(sub.Sticks))
	}
	if sub.Sticks[0].A != 0 || sub.Sticks[0].B != 1 {
		t.Errorf("subset stick indices not positional: got (%d, %d)", sub.Sticks[0].A, sub.Sticks[0].B)
	}

	if _, err := w.SceneOf([]int{d.ID, 999}); !errors.Is(err, ErrUnknownParticle) {
		t.Errorf("expected ErrUnknownParticle for bad subset, got %v", err)
	}
}

func TestDecodeRejectsNaNLength(t *testing.T) {
	s := Scene{
		Particles: []SceneParticle{{X: 0, Y: 0}, {X: 10, Y: 0}},
		Sticks:    []SceneStick{{A: 0, B: 1, Length: math.NaN()}},
	}
	if err := s.Validate(); !errors.Is(err, ErrMalformedScene) {
		t.Errorf("expected ErrMalformedScene for NaN length, got %v", err)
	}
}
