package game

import (
	"fmt"

	"github.com/milk9111/barkour/common"
	"gopkg.in/yaml.v3"
)

// Snapshot is a read-only copy of the world for renderers and tooling.
type Snapshot struct {
	Frame     int                `yaml:"frame"`
	Level     string             `yaml:"level"`
	Player    PlayerSnapshot     `yaml:"player"`
	Power     PowerSnapshot      `yaml:"power"`
	Bacon     []BaconSnapshot    `yaml:"bacon"`
	Particles []ParticleSnapshot `yaml:"particles,omitempty"`

	Platforms []common.Rect `yaml:"-"`
	Walls     []common.Rect `yaml:"-"`
}

type PlayerSnapshot struct {
	X                float64 `yaml:"x"`
	Y                float64 `yaml:"y"`
	VX               float64 `yaml:"vx"`
	VY               float64 `yaml:"vy"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	OnGround         bool    `yaml:"on_ground"`
	TouchingWall     string  `yaml:"touching_wall"`
	State            string  `yaml:"state"`
	CoyoteFrames     int     `yaml:"coyote_frames"`
	JumpBufferFrames int     `yaml:"jump_buffer_frames"`
	WallJumpCooldown int     `yaml:"wall_jump_cooldown"`
}

type PowerSnapshot struct {
	Active      bool    `yaml:"active"`
	RemainingMS float64 `yaml:"remaining_ms"`
}

type BaconSnapshot struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Collected bool    `yaml:"collected"`
}

type ParticleSnapshot struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Alpha float64 `yaml:"alpha"`
}

func (w *World) Snapshot() Snapshot {
	p := w.player
	snap := Snapshot{
		Frame: w.frame,
		Level: w.level.Name,
		Player: PlayerSnapshot{
			X:                p.Pos.X,
			Y:                p.Pos.Y,
			VX:               p.Vel.X,
			VY:               p.Vel.Y,
			Width:            p.Width,
			Height:           p.Height,
			OnGround:         p.OnGround,
			TouchingWall:     p.TouchingWall.String(),
			State:            p.State().String(),
			CoyoteFrames:     p.CoyoteFrames,
			JumpBufferFrames: p.JumpBufferFrames,
			WallJumpCooldown: p.WallJumpCooldown,
		},
		Power: PowerSnapshot{
			Active:      w.power.Active(),
			RemainingMS: w.power.RemainingMS(),
		},
		Platforms: append([]common.Rect(nil), w.level.Platforms...),
		Walls:     append([]common.Rect(nil), w.level.Walls...),
	}

	for _, b := range w.pickups {
		snap.Bacon = append(snap.Bacon, BaconSnapshot{
			X:         b.X,
			Y:         b.Y(),
			Width:     b.Width,
			Height:    b.Height,
			Collected: b.Collected,
		})
	}
	for _, pt := range p.Particles() {
		snap.Particles = append(snap.Particles, ParticleSnapshot{X: pt.Pos.X, Y: pt.Pos.Y, Alpha: pt.Alpha()})
	}
	return snap
}

func (s Snapshot) Rect() common.Rect {
	return common.NewRect(s.Player.X, s.Player.Y, s.Player.Width, s.Player.Height)
}

func (s Snapshot) Collected() int {
	n := 0
	for _, b := range s.Bacon {
		if b.Collected {
			n++
		}
	}
	return n
}

// YAML renders the snapshot for the clipboard and the sim command.
func (s Snapshot) YAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("game: marshal snapshot: %w", err)
	}
	return data, nil
}
