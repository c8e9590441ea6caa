package engine

import (
	"math"

	"github.com/TheBurgerCoder/verlet/internal/world"
)

// Step advances the world one tick: integrate every particle, relax
// every stick Tuning.Iterations times, then clamp every particle to the
// bounds. Relaxation must see already-integrated positions, and the
// clamp runs last so no relaxation pass can leave a particle out of
// bounds until the next frame.
func (e *Engine) Step(w *world.World, dt, gravity float64) {
	for _, p := range w.Particles() {
		e.Integrate(p, dt, gravity)
	}
	for i := 0; i < e.Tuning.Iterations; i++ {
		for _, st := range w.Sticks() {
			e.Relax(st, w)
		}
	}
	for _, p := range w.Particles() {
		e.Clamp(p)
	}
}

// Integrate advances one particle with the damped Verlet scheme:
// implicit velocity from the position pair, damped and component-clamped,
// plus accumulated force (and gravity on y) times dt². The force
// accumulator is an impulse valid for exactly one step and is consumed
// here. Locked particles are untouched.
func (e *Engine) Integrate(p *world.Particle, dt, gravity float64) {
	if p.Locked {
		return
	}

	vx := (p.X - p.PrevX) * e.Tuning.Damping
	vy := (p.Y - p.PrevY) * e.Tuning.Damping
	vx = clampMag(vx, e.Tuning.MaxVelocity)
	vy = clampMag(vy, e.Tuning.MaxVelocity)

	x, y := p.X, p.Y
	p.X += vx + p.FX*dt*dt
	p.Y += vy + (p.FY+gravity)*dt*dt
	p.PrevX, p.PrevY = x, y
	p.FX, p.FY = 0, 0
}

// Relax pulls a stick's endpoints one Gauss-Seidel pass toward its rest
// length, attributing half the correction to each unlocked endpoint.
// Coincident endpoints make the correction direction undefined, so that
// pass is skipped rather than letting a division by zero leak NaN into
// positions.
func (e *Engine) Relax(st *world.Stick, w *world.World) {
	a, ok := w.Particle(st.A)
	if !ok {
		return
	}
	b, ok := w.Particle(st.B)
	if !ok {
		return
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	frac := (st.RestLength - dist) / dist / 2
	ox := dx * frac
	oy := dy * frac
	if !a.Locked {
		a.X -= ox
		a.Y -= oy
	}
	if !b.Locked {
		b.X += ox
		b.Y += oy
	}
}

// Clamp clips a particle to [Margin, Width-Margin] x [Margin, Height-Margin],
// rewriting the previous position so the implicit velocity along the
// violated axis reverses scaled by Bounce. Axes are independent. Locked
// particles are clamped too: a locked anchor placed out of bounds by
// direct editing moves back inside on the next step, on purpose.
func (e *Engine) Clamp(p *world.Particle) {
	r := e.Tuning.Margin
	bounce := e.Tuning.Bounce

	vx := p.X - p.PrevX
	if p.X > e.Width-r {
		p.X = e.Width - r
		p.PrevX = p.X + vx*bounce
	} else if p.X < r {
		p.X = r
		p.PrevX = p.X + vx*bounce
	}

	vy := p.Y - p.PrevY
	if p.Y > e.Height-r {
		p.Y = e.Height - r
		p.PrevY = p.Y + vy*bounce
	} else if p.Y < r {
		p.Y = r
		p.PrevY = p.Y + vy*bounce
	}
}

func clampMag(v, max float64) float64 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
