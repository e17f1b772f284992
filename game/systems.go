package game

import "github.com/milk9111/barkour/obj"

// DefaultSystems is the frame order: player, power-up timer, pickup bob,
// pickup collection. The player reads the power-up state left by the
// previous frame.
func DefaultSystems() []System {
	return []System{
		NewPlayerSystem(),
		NewPowerUpSystem(),
		NewPickupHoverSystem(),
		NewPickupCollectSystem(),
	}
}

type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem { return &PlayerSystem{} }

func (s *PlayerSystem) Update(w *World) {
	if w == nil || w.player == nil {
		return
	}

	wasGrounded := w.player.OnGround
	in := obj.Input{MoveX: w.input.MoveX(), JumpPressed: w.input.Jump}

	switch w.player.Update(in, w.level.Platforms, w.level.Walls, w.power) {
	case obj.JumpGround:
		w.emit(EventJump, nil)
	case obj.JumpWall:
		w.emit(EventWallJump, w.player.WallJumpSide)
	}

	if !wasGrounded && w.player.OnGround {
		w.emit(EventLanded, nil)
	}
}

type PowerUpSystem struct{}

func NewPowerUpSystem() *PowerUpSystem { return &PowerUpSystem{} }

func (s *PowerUpSystem) Update(w *World) {
	if w == nil || w.power == nil {
		return
	}
	wasActive := w.power.Active()
	w.power.Advance(w.deltaMS())
	if wasActive && !w.power.Active() {
		w.emit(EventPowerExpired, nil)
	}
}

type PickupHoverSystem struct{}

func NewPickupHoverSystem() *PickupHoverSystem { return &PickupHoverSystem{} }

func (s *PickupHoverSystem) Update(w *World) {
	if w == nil {
		return
	}
	for _, pickup := range w.pickups {
		pickup.Advance()
	}
}

type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Update(w *World) {
	if w == nil || w.player == nil {
		return
	}
	bounds := w.player.Rect()
	for i, pickup := range w.pickups {
		if !pickup.TryCollect(bounds) {
			continue
		}
		w.power.Activate()
		w.emit(EventPickupCollected, i)
	}
}
