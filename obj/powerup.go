package obj

import "github.com/milk9111/barkour/prefabs"

// expiryEpsilon is relative to the boost duration. Frame periods like 1000/30
// are inexact in float64; a remainder this small counts as spent.
const expiryEpsilon = 1e-9

// PowerUp tracks the timed bacon boost. Remaining time is in milliseconds and
// the boost is active exactly while it is positive.
type PowerUp struct {
	active    bool
	remaining float64

	spec prefabs.PowerUpSpec
}

func NewPowerUp(spec prefabs.PowerUpSpec) *PowerUp {
	return &PowerUp{spec: spec}
}

// Configure swaps duration and multipliers without touching a running boost.
func (p *PowerUp) Configure(spec prefabs.PowerUpSpec) {
	if p == nil {
		return
	}
	p.spec = spec
}

// Activate starts the boost at full duration. Activating while already active
// restarts the timer rather than extending it.
func (p *PowerUp) Activate() {
	if p == nil {
		return
	}
	p.remaining = p.spec.DurationMS
	p.active = p.remaining > 0
}

// Advance burns deltaMS off a running boost.
func (p *PowerUp) Advance(deltaMS float64) {
	if p == nil || !p.active {
		return
	}
	p.remaining -= deltaMS
	if p.remaining <= expiryEpsilon*p.spec.DurationMS {
		p.remaining = 0
		p.active = false
	}
}

func (p *PowerUp) Active() bool {
	return p != nil && p.active
}

func (p *PowerUp) RemainingMS() float64 {
	if p == nil || p.remaining < 0 {
		return 0
	}
	return p.remaining
}

func (p *PowerUp) SecondsRemaining() float64 {
	return p.RemainingMS() / 1000
}

// Reset drops any running boost.
func (p *PowerUp) Reset() {
	if p == nil {
		return
	}
	p.active = false
	p.remaining = 0
}

func (p *PowerUp) SpeedMultiplier() float64 {
	if !p.Active() {
		return 1
	}
	return p.spec.SpeedMultiplier
}

func (p *PowerUp) JumpMultiplier() float64 {
	if !p.Active() {
		return 1
	}
	return p.spec.JumpMultiplier
}

func (p *PowerUp) WallJumpMultiplier() float64 {
	if !p.Active() {
		return 1
	}
	return p.spec.WallJumpMultiplier
}
