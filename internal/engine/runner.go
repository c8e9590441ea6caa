package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/TheBurgerCoder/verlet/internal/metrics"
	"github.com/TheBurgerCoder/verlet/internal/world"
)

// RunConfig parameterizes a headless run.
type RunConfig struct {
	Dt            float64
	Gravity       float64
	Steps         int
	ValidateState bool
}

// Result is the record of a headless run. Frames holds one flattened
// position row per recorded step: x0, y0, x1, y1, ... in arena order.
type Result struct {
	Times      []float64
	Frames     [][]float64
	Metrics    map[string]float64
	StepsTaken int
}

// Runner drives an engine over a world for a fixed number of steps,
// feeding metrics and recording frames. The world is mutated in place;
// callers that need the pre-run graph back take a world.Snapshot first.
type Runner struct {
	engine  *Engine
	metrics []metrics.Metric
}

func NewRunner(e *Engine) *Runner {
	return &Runner{engine: e}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }

// Run executes cfg.Steps ticks, checking ctx between steps. A step
// always runs to completion; cancellation lands on the next boundary
// and returns the partial result alongside ctx.Err().
func (r *Runner) Run(ctx context.Context, w *world.World, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:   make([]float64, 0, cfg.Steps+1),
		Frames:  make([][]float64, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	record := func() {
		result.Times = append(result.Times, t)
		result.Frames = append(result.Frames, frame(w))
	}
	record()

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range r.metrics {
			m.Observe(w, t)
		}

		r.engine.Step(w, cfg.Dt, cfg.Gravity)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState {
			if id, ok := invalidParticle(w); ok {
				return result, fmt.Errorf("invalid state (NaN/Inf) on particle %d at step %d", id, i)
			}
		}

		record()
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}

func frame(w *world.World) []float64 {
	particles := w.Particles()
	row := make([]float64, 0, len(particles)*2)
	for _, p := range particles {
		row = append(row, p.X, p.Y)
	}
	return row
}

func invalidParticle(w *world.World) (int, bool) {
	for _, p := range w.Particles() {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return p.ID, true
		}
	}
	return 0, false
}
