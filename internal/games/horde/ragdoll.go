package horde

import "math"

// Cosmetic physics constants, world units per second.
const (
	Gravity          = 300.0
	DefaultFriction  = 0.95
	BaseFallVelocity = 60.0
)

// Vec2 is a 2D float vector.
type Vec2 struct {
	X, Y float64
}

// Physics is decoration attached to a piece. Nothing in placement or
// collision reads it.
type Physics struct {
	Velocity        Vec2
	AngularVelocity float64 // degrees per second
	Mass            float64
	Friction        float64
	Spin            float64 // accumulated tumble angle, degrees
}

// NewPhysics returns the resting physics state of a freshly spawned piece.
func NewPhysics() Physics {
	return Physics{
		Velocity: Vec2{Y: BaseFallVelocity},
		Mass:     1,
		Friction: DefaultFriction,
	}
}

// ApplyRagdoll advances the tumble of a piece that is no longer controlled,
// such as the remains of a destroyed zombie. dt is in seconds.
func (p *Piece) ApplyRagdoll(dt float64) {
	ph := &p.Physics
	ph.Velocity.Y += Gravity * dt

	ph.Velocity.X *= ph.Friction
	ph.Velocity.Y *= ph.Friction
	ph.AngularVelocity *= ph.Friction

	p.SetPosition(p.X+ph.Velocity.X*dt, p.Y+ph.Velocity.Y*dt)

	if math.Abs(ph.AngularVelocity) > 0.1 {
		ph.Spin += ph.AngularVelocity * dt
	}
}
