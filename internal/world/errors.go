package world

import "errors"

// Domain errors for editing and import operations. Every anomaly the
// package detects degrades to a no-op plus one of these; nothing panics.
var (
	// ErrParticleTooClose indicates a new particle would land within the
	// minimum spacing of an existing one.
	ErrParticleTooClose = errors.New("world: particle too close to an existing particle")

	// ErrUnknownParticle indicates a reference to a particle ID that is
	// not (or no longer) in the world.
	ErrUnknownParticle = errors.New("world: unknown particle")

	// ErrStickEndpoints indicates a stick with identical endpoints.
	ErrStickEndpoints = errors.New("world: stick endpoints must differ")

	// ErrDuplicateStick indicates a stick already joins the pair.
	ErrDuplicateStick = errors.New("world: stick already exists between pair")

	// ErrZeroRestLength indicates a stick whose rest length would not be
	// a positive finite number.
	ErrZeroRestLength = errors.New("world: stick rest length must be positive")

	// ErrMalformedScene indicates a serialized scene that is structurally
	// invalid; the target world is left untouched.
	ErrMalformedScene = errors.New("world: malformed scene")
)
