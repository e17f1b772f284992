package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/barkour/common"
	"github.com/milk9111/barkour/prefabs"
)

func testSpec() *prefabs.GameSpec {
	spec := &prefabs.GameSpec{}
	spec.Game.Screen.Width = 800
	spec.Game.Screen.Height = 600
	spec.Player = prefabs.PlayerSpec{Width: 40, Height: 40, StartX: 100, StartY: 460}
	spec.Physics = prefabs.PhysicsSpec{
		Gravity:                0.5,
		BaseJumpStrength:       -12,
		BaseMovementSpeed:      5,
		MaxFallSpeed:           15,
		WallSlideSpeed:         2,
		WallJumpPush:           8,
		WallJumpStrength:       -13,
		CoyoteTimeFrames:       6,
		JumpBufferFrames:       4,
		WallJumpCooldownFrames: 10,
	}
	spec.PowerUp = prefabs.PowerUpSpec{
		DurationMS:         5000,
		SpeedMultiplier:    1.5,
		JumpMultiplier:     1.2,
		WallJumpMultiplier: 1.3,
	}
	spec.Bacon = prefabs.BaconSpec{Width: 30, Height: 20, BobSpeed: 0.1, BobAmplitude: 5}
	return spec
}

var ground = []common.Rect{common.NewRect(0, 500, 800, 100)}

func playerAt(spec *prefabs.GameSpec, x, y float64) *Player {
	spec.Player.StartX = x
	spec.Player.StartY = y
	return NewPlayer(spec)
}

func TestPlayerLandsAndRests(t *testing.T) {
	p := NewPlayer(testSpec())
	p.Update(Input{}, ground, nil, nil)
	if !p.OnGround {
		t.Fatalf("expected player to land on ground")
	}
	for i := 0; i < 30; i++ {
		p.Update(Input{}, ground, nil, nil)
		if !p.OnGround || p.Vel.Y != 0 || p.Pos.Y != 460 {
			t.Fatalf("frame %d: on_ground=%v vy=%v y=%v", i, p.OnGround, p.Vel.Y, p.Pos.Y)
		}
	}
	if p.State() != StateGrounded {
		t.Fatalf("state = %v, want grounded", p.State())
	}
}

func TestGroundJumpFromRest(t *testing.T) {
	cases := []struct {
		name  string
		boost Booster
		want  float64
	}{
		{"plain", nil, -12},
		{"powered", activePower(), -12 * testSpec().PowerUp.JumpMultiplier},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlayer(testSpec())
			p.Update(Input{}, ground, nil, nil)
			kind := p.Update(Input{JumpPressed: true}, ground, nil, c.boost)
			if kind != JumpGround {
				t.Fatalf("jump kind = %v, want ground", kind)
			}
			if p.Vel.Y != c.want {
				t.Fatalf("vy = %v, want %v", p.Vel.Y, c.want)
			}
			if p.OnGround || p.CoyoteFrames != 0 || p.JumpBufferFrames != 0 {
				t.Fatalf("jump did not consume state: %+v", p)
			}
			if p.Pos.Y != 460+c.want {
				t.Fatalf("y = %v, want %v", p.Pos.Y, 460+c.want)
			}
		})
	}
}

func activePower() *PowerUp {
	pw := NewPowerUp(testSpec().PowerUp)
	pw.Activate()
	return pw
}

// walkOffLedge walks right off a short ledge and returns the player on the
// first frame it is airborne.
func walkOffLedge(t *testing.T) (*Player, []common.Rect) {
	t.Helper()
	ledge := []common.Rect{common.NewRect(0, 500, 200, 20)}
	p := playerAt(testSpec(), 150, 460)
	p.Update(Input{}, ledge, nil, nil)
	for i := 0; i < 40; i++ {
		p.Update(Input{MoveX: 1}, ledge, nil, nil)
		if !p.OnGround {
			return p, ledge
		}
	}
	t.Fatalf("player never left the ledge")
	return nil, nil
}

func TestCoyoteTime(t *testing.T) {
	for wait := 0; wait <= 7; wait++ {
		p, ledge := walkOffLedge(t)
		for i := 0; i < wait; i++ {
			p.Update(Input{}, ledge, nil, nil)
		}
		kind := p.Update(Input{JumpPressed: true}, ledge, nil, nil)
		want := JumpGround
		if wait >= 6 {
			want = JumpNone
		}
		if kind != want {
			t.Fatalf("wait %d: jump kind = %v, want %v", wait, kind, want)
		}
	}
}

// framesToLand returns the index of the first update that begins grounded
// when falling from y.
func framesToLand(t *testing.T, y float64) int {
	t.Helper()
	p := playerAt(testSpec(), 100, y)
	for i := 1; i < 200; i++ {
		p.Update(Input{}, ground, nil, nil)
		if p.OnGround {
			return i + 1
		}
	}
	t.Fatalf("player never landed")
	return 0
}

func TestJumpBuffer(t *testing.T) {
	landing := framesToLand(t, 200)
	for early := 0; early <= 4; early++ {
		p := playerAt(testSpec(), 100, 200)
		press := landing - early
		var kind JumpKind
		for frame := 1; frame <= landing; frame++ {
			kind = p.Update(Input{JumpPressed: frame == press}, ground, nil, nil)
			if frame < landing && kind != JumpNone {
				t.Fatalf("early %d: jumped on frame %d before landing", early, frame)
			}
		}
		want := JumpGround
		if early >= 4 {
			want = JumpNone
		}
		if kind != want {
			t.Fatalf("early %d: landing frame jump = %v, want %v", early, kind, want)
		}
	}
}

func TestFallSpeedCapped(t *testing.T) {
	p := playerAt(testSpec(), 100, 0)
	p.Vel.Y = 14.8
	p.Update(Input{}, nil, nil, nil)
	if p.Vel.Y != 15 {
		t.Fatalf("vy = %v, want 15", p.Vel.Y)
	}
}

func TestWallJump(t *testing.T) {
	cases := []struct {
		name  string
		x     float64
		move  int
		wall  common.Rect
		side  WallSide
		pushX float64
	}{
		{"right_wall", 262, 1, common.NewRect(300, 0, 30, 600), WallRight, -8},
		{"left_wall", 128, -1, common.NewRect(100, 0, 30, 600), WallLeft, 8},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			walls := []common.Rect{c.wall}
			p := playerAt(testSpec(), c.x, 200)

			p.Update(Input{MoveX: c.move}, nil, walls, nil)
			if p.TouchingWall != c.side || !p.CanWallJump {
				t.Fatalf("touching = %v can = %v, want %v", p.TouchingWall, p.CanWallJump, c.side)
			}

			kind := p.Update(Input{MoveX: c.move, JumpPressed: true}, nil, walls, nil)
			if kind != JumpWall {
				t.Fatalf("jump kind = %v, want wall", kind)
			}
			if p.Vel.X != c.pushX {
				t.Fatalf("vx = %v, want %v", p.Vel.X, c.pushX)
			}
			if p.WallJumpSide != c.side {
				t.Fatalf("wall jump side = %v, want %v", p.WallJumpSide, c.side)
			}
			if p.Vel.Y != -13 {
				t.Fatalf("vy = %v, want -13", p.Vel.Y)
			}
			if p.WallJumpCooldown != 10 || p.State() != StateWallJumpCooldown {
				t.Fatalf("cooldown = %d state = %v", p.WallJumpCooldown, p.State())
			}
		})
	}
}

func TestWallJumpSideWithInwardPush(t *testing.T) {
	spec := testSpec()
	spec.Physics.WallJumpPush = -8
	walls := []common.Rect{common.NewRect(300, 0, 30, 600)}
	p := playerAt(spec, 262, 200)

	p.Update(Input{MoveX: 1}, nil, walls, nil)
	if kind := p.Update(Input{MoveX: 1, JumpPressed: true}, nil, walls, nil); kind != JumpWall {
		t.Fatalf("jump kind = %v, want wall", kind)
	}
	if p.Vel.X != 8 {
		t.Fatalf("vx = %v, want 8", p.Vel.X)
	}
	if p.WallJumpSide != WallRight {
		t.Fatalf("wall jump side = %v, want right", p.WallJumpSide)
	}

	p.Reset()
	if p.WallJumpSide != WallNone {
		t.Fatalf("reset kept wall jump side %v", p.WallJumpSide)
	}
}

func TestWallJumpCooldownSuppressesWalls(t *testing.T) {
	walls := []common.Rect{common.NewRect(300, 0, 30, 600)}
	p := playerAt(testSpec(), 262, 200)
	p.Update(Input{MoveX: 1}, nil, walls, nil)
	p.Update(Input{MoveX: 1, JumpPressed: true}, nil, walls, nil)

	p.Pos.X = 262
	for i := 0; i < 10; i++ {
		kind := p.Update(Input{MoveX: 1, JumpPressed: true}, nil, walls, nil)
		if kind != JumpNone || p.TouchingWall != WallNone {
			t.Fatalf("frame %d: kind = %v touching = %v during cooldown", i, kind, p.TouchingWall)
		}
		p.Pos.X = 262
	}
	if p.WallJumpCooldown != 0 {
		t.Fatalf("cooldown = %d, want 0", p.WallJumpCooldown)
	}
	if kind := p.Update(Input{MoveX: 1, JumpPressed: true}, nil, walls, nil); kind != JumpWall {
		t.Fatalf("expected wall jump after cooldown, got %v", kind)
	}
}

func TestPoweredWallJump(t *testing.T) {
	walls := []common.Rect{common.NewRect(300, 0, 30, 600)}
	p := playerAt(testSpec(), 262, 200)
	power := activePower()
	p.Update(Input{MoveX: 1}, nil, walls, power)
	if kind := p.Update(Input{MoveX: 1, JumpPressed: true}, nil, walls, power); kind != JumpWall {
		t.Fatalf("jump kind = %v, want wall", kind)
	}
	if want := -13 * power.WallJumpMultiplier(); p.Vel.Y != want {
		t.Fatalf("vy = %v, want %v", p.Vel.Y, want)
	}
	if p.Vel.X != -8 {
		t.Fatalf("push is not boosted: vx = %v", p.Vel.X)
	}
}

func TestGroundJumpBeatsWallJump(t *testing.T) {
	walls := []common.Rect{common.NewRect(300, 0, 30, 600)}
	p := playerAt(testSpec(), 262, 460)
	p.Update(Input{MoveX: 1}, ground, walls, nil)
	if !p.OnGround {
		t.Fatalf("expected grounded")
	}
	if kind := p.Update(Input{MoveX: 1, JumpPressed: true}, ground, walls, nil); kind != JumpGround {
		t.Fatalf("jump kind = %v, want ground", kind)
	}
	if p.WallJumpCooldown != 0 {
		t.Fatalf("ground jump started wall cooldown")
	}
}

func TestWallSlide(t *testing.T) {
	walls := []common.Rect{common.NewRect(300, 0, 30, 600)}
	p := playerAt(testSpec(), 262, 200)
	p.TouchingWall = WallRight
	p.Vel.Y = 5

	p.Update(Input{MoveX: 1}, nil, walls, nil)
	if p.Vel.Y != 2 {
		t.Fatalf("vy = %v, want wall slide speed 2", p.Vel.Y)
	}
	if p.State() != StateWallSliding {
		t.Fatalf("state = %v, want wall_sliding", p.State())
	}
	parts := p.Particles()
	if len(parts) != 1 {
		t.Fatalf("particles = %d, want 1", len(parts))
	}
	if parts[0].Pos.X != 262+40 {
		t.Fatalf("particle x = %v, want right edge", parts[0].Pos.X)
	}

	for i := 0; i < 5; i++ {
		p.Pos.X = 262
		p.Update(Input{MoveX: 1}, nil, walls, nil)
	}
	if n := len(p.Particles()); n != maxParticles {
		t.Fatalf("particles = %d, want cap %d", n, maxParticles)
	}
}

func TestRisingIntoPlatformSnapsBelow(t *testing.T) {
	ceiling := []common.Rect{common.NewRect(0, 200, 800, 20)}
	p := playerAt(testSpec(), 100, 225)
	p.Vel.Y = -10
	p.Update(Input{}, ceiling, nil, nil)
	if p.Pos.Y != 220 || p.Vel.Y != 0 || p.OnGround {
		t.Fatalf("y = %v vy = %v on_ground = %v", p.Pos.Y, p.Vel.Y, p.OnGround)
	}
}

func TestOverlappingPlatformsResolveInOrder(t *testing.T) {
	low := common.NewRect(0, 500, 800, 20)
	high := common.NewRect(0, 495, 800, 20)
	cases := []struct {
		name      string
		platforms []common.Rect
		wantY     float64
	}{
		{"low_first", []common.Rect{low, high}, 460},
		{"high_first", []common.Rect{high, low}, 455},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := playerAt(testSpec(), 100, 462)
			p.Update(Input{}, c.platforms, nil, nil)
			if p.Pos.Y != c.wantY || !p.OnGround {
				t.Fatalf("y = %v on_ground = %v, want %v", p.Pos.Y, p.OnGround, c.wantY)
			}
		})
	}
}

func TestHorizontalClamp(t *testing.T) {
	cases := []struct {
		name  string
		x     float64
		move  int
		wantX float64
	}{
		{"left_edge", 2, -1, 0},
		{"right_edge", 758, 1, 760},
		{"inside", 300, 1, 305},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := playerAt(testSpec(), c.x, 460)
			p.Update(Input{MoveX: c.move}, ground, nil, nil)
			if p.Pos.X != c.wantX {
				t.Fatalf("x = %v, want %v", p.Pos.X, c.wantX)
			}
		})
	}
}

func TestPlayerStaysOnScreen(t *testing.T) {
	spec := testSpec()
	p := NewPlayer(spec)
	walls := []common.Rect{common.NewRect(0, 0, 20, 600), common.NewRect(780, 0, 20, 600)}
	power := NewPowerUp(spec.PowerUp)
	for frame := 0; frame < 2000; frame++ {
		if frame%300 == 0 {
			power.Activate()
		}
		move := []int{1, 1, 1, -1, 0, -1, -1}[frame/37%7]
		in := Input{MoveX: move, JumpPressed: frame%11 == 0}
		p.Update(in, ground, walls, power)
		power.Advance(1000.0 / 60)
		if p.Pos.X < 0 || p.Pos.X > 760 {
			t.Fatalf("frame %d: x = %v out of bounds", frame, p.Pos.X)
		}
		if p.OnGround && p.Vel.Y != 0 {
			t.Fatalf("frame %d: grounded with vy = %v", frame, p.Vel.Y)
		}
	}
}

func TestSpeedBoost(t *testing.T) {
	p := NewPlayer(testSpec())
	p.Update(Input{MoveX: 1}, ground, nil, activePower())
	if p.Vel.X != 5*1.5 {
		t.Fatalf("vx = %v, want %v", p.Vel.X, 5*1.5)
	}
}

func TestReset(t *testing.T) {
	p := NewPlayer(testSpec())
	p.Update(Input{MoveX: 1, JumpPressed: true}, ground, nil, nil)
	p.Reset()
	if p.Pos != (cp.Vector{X: 100, Y: 460}) || p.Vel != (cp.Vector{}) || p.OnGround {
		t.Fatalf("reset left state behind: %+v", p)
	}
}
