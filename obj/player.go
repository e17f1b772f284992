package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/barkour/common"
	"github.com/milk9111/barkour/prefabs"
)

type WallSide int

const (
	WallNone WallSide = iota
	WallLeft
	WallRight
)

func (w WallSide) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	default:
		return "none"
	}
}

// MoveState names the configuration the contact flags describe. It is derived
// from the flags and never stored.
type MoveState int

const (
	StateGrounded MoveState = iota
	StateAirborne
	StateWallSliding
	StateWallJumpCooldown
)

func (s MoveState) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateWallSliding:
		return "wall_sliding"
	case StateWallJumpCooldown:
		return "wall_jump_cooldown"
	default:
		return "airborne"
	}
}

// JumpKind reports which jump, if any, an update performed.
type JumpKind int

const (
	JumpNone JumpKind = iota
	JumpGround
	JumpWall
)

// Input is one frame of player intent. JumpPressed is edge-triggered: the host
// sets it only on the frame the key went down.
type Input struct {
	MoveX       int
	JumpPressed bool
}

// Booster scales movement while a power-up runs. *PowerUp implements it.
type Booster interface {
	SpeedMultiplier() float64
	JumpMultiplier() float64
	WallJumpMultiplier() float64
}

type noBoost struct{}

func (noBoost) SpeedMultiplier() float64    { return 1 }
func (noBoost) JumpMultiplier() float64     { return 1 }
func (noBoost) WallJumpMultiplier() float64 { return 1 }

// Player is Tilly. Position is the top-left corner of the hitbox.
type Player struct {
	Pos           cp.Vector
	Vel           cp.Vector
	Width, Height float64

	OnGround         bool
	WasOnGround      bool
	TouchingWall     WallSide
	CanWallJump      bool
	WallJumpCooldown int
	CoyoteFrames     int
	JumpBufferFrames int

	// WallJumpSide is the wall the most recent wall jump pushed off from.
	WallJumpSide WallSide

	physics     prefabs.PhysicsSpec
	screenWidth float64
	start       cp.Vector
	particles   Particles
}

func NewPlayer(spec *prefabs.GameSpec) *Player {
	p := &Player{
		Width:  spec.Player.Width,
		Height: spec.Player.Height,
		start:  cp.Vector{X: spec.Player.StartX, Y: spec.Player.StartY},
	}
	p.Configure(spec.Physics, spec.Game.Screen.Width)
	p.Reset()
	return p
}

// Configure swaps the tuning. Position and contact state are kept.
func (p *Player) Configure(physics prefabs.PhysicsSpec, screenWidth float64) {
	p.physics = physics
	p.screenWidth = screenWidth
}

// Reset puts the player back at its spawn, at rest and airborne.
func (p *Player) Reset() {
	p.Pos = p.start
	p.Vel = cp.Vector{}
	p.OnGround = false
	p.WasOnGround = false
	p.TouchingWall = WallNone
	p.CanWallJump = false
	p.WallJumpCooldown = 0
	p.CoyoteFrames = 0
	p.JumpBufferFrames = 0
	p.WallJumpSide = WallNone
	p.particles.Reset()
}

func (p *Player) Rect() common.Rect {
	return common.NewRect(p.Pos.X, p.Pos.Y, p.Width, p.Height)
}

func (p *Player) Particles() []Particle {
	return p.particles.Items()
}

func (p *Player) State() MoveState {
	switch {
	case p.OnGround:
		return StateGrounded
	case p.WallJumpCooldown > 0:
		return StateWallJumpCooldown
	case p.TouchingWall != WallNone:
		return StateWallSliding
	default:
		return StateAirborne
	}
}

// Update advances the player one frame. The order of the steps matters: wall
// contact is judged from the start-of-frame position, ground contact from the
// integrated one.
func (p *Player) Update(in Input, platforms, walls []common.Rect, boost Booster) JumpKind {
	if boost == nil {
		boost = noBoost{}
	}

	p.trackCoyote()
	p.trackJumpBuffer(in.JumpPressed)
	p.applyGravity()
	p.particles.Advance()

	p.Vel.X = float64(sign(in.MoveX)) * p.physics.BaseMovementSpeed * boost.SpeedMultiplier()

	p.TouchingWall = p.detectWall(walls)
	p.CanWallJump = p.TouchingWall != WallNone && !p.OnGround

	jump := p.resolveJump(in.JumpPressed, boost)

	p.Pos = p.Pos.Add(p.Vel)

	p.resolvePlatforms(platforms)
	p.Pos.X = common.Clamp(p.Pos.X, 0, p.screenWidth-p.Width)

	return jump
}

func (p *Player) trackCoyote() {
	switch {
	case p.WasOnGround && !p.OnGround:
		p.CoyoteFrames = p.physics.CoyoteTimeFrames
	case p.OnGround:
		p.CoyoteFrames = p.physics.CoyoteTimeFrames
	default:
		p.CoyoteFrames = common.StepToward(p.CoyoteFrames)
	}
	p.WasOnGround = p.OnGround
}

func (p *Player) trackJumpBuffer(pressed bool) {
	if pressed {
		p.JumpBufferFrames = p.physics.JumpBufferFrames
		return
	}
	p.JumpBufferFrames = common.StepToward(p.JumpBufferFrames)
}

func (p *Player) applyGravity() {
	if p.TouchingWall != WallNone && p.Vel.Y > 0 && !p.OnGround {
		p.Vel.Y = min(p.Vel.Y+p.physics.Gravity, p.physics.WallSlideSpeed)
		x := p.Pos.X + p.Width
		if p.TouchingWall == WallLeft {
			x = p.Pos.X
		}
		p.particles.Emit(cp.Vector{X: x, Y: p.Pos.Y + p.Height/2})
		return
	}
	p.Vel.Y = min(p.Vel.Y+p.physics.Gravity, p.physics.MaxFallSpeed)
}

// detectWall reports the side of the first overlapping wall, judged by the
// direction of travel. A running wall-jump cooldown suppresses detection.
func (p *Player) detectWall(walls []common.Rect) WallSide {
	if p.WallJumpCooldown > 0 {
		p.WallJumpCooldown--
		return WallNone
	}
	bounds := p.Rect()
	for _, wall := range walls {
		if !bounds.Intersects(wall) {
			continue
		}
		if p.Vel.X > 0 {
			return WallRight
		}
		if p.Vel.X < 0 {
			return WallLeft
		}
	}
	return WallNone
}

// resolveJump fires a ground jump (including coyote time) in preference to a
// wall jump. Both consume the jump buffer.
func (p *Player) resolveJump(pressed bool, boost Booster) JumpKind {
	if !pressed && p.JumpBufferFrames <= 0 {
		return JumpNone
	}

	if p.OnGround || p.CoyoteFrames > 0 {
		p.Vel.Y = p.physics.BaseJumpStrength * boost.JumpMultiplier()
		p.OnGround = false
		p.CoyoteFrames = 0
		p.JumpBufferFrames = 0
		return JumpGround
	}

	if p.CanWallJump {
		push := -p.physics.WallJumpPush
		if p.TouchingWall == WallLeft {
			push = p.physics.WallJumpPush
		}
		p.Vel.X = push
		p.Vel.Y = p.physics.WallJumpStrength * boost.WallJumpMultiplier()
		p.WallJumpSide = p.TouchingWall
		p.TouchingWall = WallNone
		p.CanWallJump = false
		p.WallJumpCooldown = p.physics.WallJumpCooldownFrames
		p.JumpBufferFrames = 0
		return JumpWall
	}

	return JumpNone
}

// resolvePlatforms snaps the player out of every platform its integrated
// hitbox overlaps. Each platform is handled on its own against the same
// hitbox, in slice order; overlapping platforms are not merged.
func (p *Player) resolvePlatforms(platforms []common.Rect) {
	p.OnGround = false
	bounds := p.Rect()
	for _, plat := range platforms {
		if !bounds.Intersects(plat) {
			continue
		}
		if p.Vel.Y > 0 {
			p.Pos.Y = plat.Y - p.Height
			p.Vel.Y = 0
			p.OnGround = true
			p.TouchingWall = WallNone
		} else if p.Vel.Y < 0 {
			p.Pos.Y = plat.Y + plat.Height
			p.Vel.Y = 0
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
