package obj

import (
	"math"

	"github.com/milk9111/barkour/common"
	"github.com/milk9111/barkour/prefabs"
)

// Pickup is a floating bacon strip. Its hitbox follows the bob offset.
type Pickup struct {
	X, BaseY      float64
	Width, Height float64
	Collected     bool
	BobPhase      float64

	bobSpeed     float64
	bobAmplitude float64
}

func NewPickup(x, y float64, spec prefabs.BaconSpec) *Pickup {
	return &Pickup{
		X:            x,
		BaseY:        y,
		Width:        spec.Width,
		Height:       spec.Height,
		bobSpeed:     spec.BobSpeed,
		bobAmplitude: spec.BobAmplitude,
	}
}

// Advance moves the bob phase along. Collected pickups stay frozen.
func (p *Pickup) Advance() {
	if p == nil || p.Collected {
		return
	}
	p.BobPhase += p.bobSpeed
}

func (p *Pickup) Y() float64 {
	return p.BaseY + p.bobAmplitude*math.Sin(p.BobPhase)
}

func (p *Pickup) Rect() common.Rect {
	return common.NewRect(p.X, p.Y(), p.Width, p.Height)
}

// TryCollect marks the pickup collected the first time bounds overlaps it and
// reports whether that happened on this call.
func (p *Pickup) TryCollect(bounds common.Rect) bool {
	if p == nil || p.Collected {
		return false
	}
	if !p.Rect().Intersects(bounds) {
		return false
	}
	p.Collected = true
	return true
}
