package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TheBurgerCoder/verlet/internal/engine"
	"github.com/TheBurgerCoder/verlet/internal/world"
)

func sampleRun(t *testing.T) (*world.World, *engine.Result) {
	t.Helper()
	w := world.New()
	a, _ := w.AddParticle(400, 100, true)
	b, _ := w.AddParticle(400, 200, false)
	if _, err := w.AddStick(a.ID, b.ID); err != nil {
		t.Fatalf("add stick: %v", err)
	}

	result := &engine.Result{
		Times: []float64{0, 1},
		Frames: [][]float64{
			{400, 100, 400, 200},
			{400, 100, 400, 200.5},
		},
		Metrics:    map[string]float64{"strain": 0.005},
		StepsTaken: 1,
	}
	return w, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	w, result := sampleRun(t)

	runID, err := st.Save("rope", 1.0, 0.5, w, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "rope" {
		t.Errorf("expected scene 'rope', got %q", meta.Scene)
	}
	if meta.Gravity != 0.5 {
		t.Errorf("expected gravity 0.5, got %f", meta.Gravity)
	}
	if meta.Particles != 2 || meta.Sticks != 1 {
		t.Errorf("expected 2 particles/1 stick, got %d/%d", meta.Particles, meta.Sticks)
	}
	if meta.Metrics["strain"] != 0.005 {
		t.Errorf("expected strain 0.005, got %f", meta.Metrics["strain"])
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 frames and times, got %d/%d", len(frames), len(times))
	}
	if frames[1][3] != 200.5 {
		t.Errorf("expected y1 200.5 in second frame, got %f", frames[1][3])
	}
}

func TestStoreLoadScene(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	w, result := sampleRun(t)
	runID, err := st.Save("rope", 1.0, 0.5, w, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	scene, err := st.LoadScene(runID)
	if err != nil {
		t.Fatalf("load scene failed: %v", err)
	}
	if len(scene.Particles) != 2 || len(scene.Sticks) != 1 {
		t.Errorf("expected 2 particles/1 stick, got %d/%d", len(scene.Particles), len(scene.Sticks))
	}
	if !scene.Particles[0].Locked {
		t.Error("expected anchor to stay locked through the store")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	w, result := sampleRun(t)
	if _, err := st.Save("rope", 1.0, 0.5, w, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	w, result := sampleRun(t)
	runID, err := st.Save("rope", 1.0, 0.5, w, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "frames.csv", "scene.json"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}
