package obj

import "github.com/jakecoffman/cp"

const (
	particleLife  = 20
	particleDrift = 2.0
	maxParticles  = 3
)

// Particle is a wall-slide puff. It only feeds the renderer.
type Particle struct {
	Pos  cp.Vector
	Life int
}

// Alpha fades from 1 to 0 over the particle's life.
func (p Particle) Alpha() float64 {
	return float64(p.Life) / particleLife
}

type Particles struct {
	items []Particle
}

// Emit adds a particle unless the cap is reached.
func (ps *Particles) Emit(pos cp.Vector) bool {
	if ps == nil || len(ps.items) >= maxParticles {
		return false
	}
	ps.items = append(ps.items, Particle{Pos: pos, Life: particleLife})
	return true
}

// Advance drops dead particles, then ages and drifts the rest downward.
func (ps *Particles) Advance() {
	if ps == nil {
		return
	}
	alive := ps.items[:0]
	for _, p := range ps.items {
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	ps.items = alive
	for i := range ps.items {
		ps.items[i].Life--
		ps.items[i].Pos.Y += particleDrift
	}
}

func (ps *Particles) Items() []Particle {
	if ps == nil {
		return nil
	}
	return append([]Particle(nil), ps.items...)
}

func (ps *Particles) Reset() {
	if ps == nil {
		return
	}
	ps.items = ps.items[:0]
}
