package prefabs

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/barkour/common"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigName = "barkour.json"
	DefaultLevel      = "demo"

	defaultCoyoteTimeFrames       = 6
	defaultJumpBufferFrames       = 4
	defaultWallJumpCooldownFrames = 10
	defaultFPS                    = 60

	defaultBaconWidth        = 30
	defaultBaconHeight       = 20
	defaultBaconBobSpeed     = 0.1
	defaultBaconBobAmplitude = 5
)

var ErrInvalidSpec = errors.New("prefabs: invalid game spec")

// GameSpec is the whole tuning document. JSON documents decode as-is since
// yaml.v3 accepts JSON input.
type GameSpec struct {
	Game    GameSettings         `yaml:"game"`
	Player  PlayerSpec           `yaml:"player"`
	Physics PhysicsSpec          `yaml:"physics"`
	PowerUp PowerUpSpec          `yaml:"powerup"`
	Bacon   BaconSpec            `yaml:"bacon"`
	Colors  map[string]YAMLColor `yaml:"colors"`
	Levels  map[string]LevelSpec `yaml:"levels"`
}

type GameSettings struct {
	Title      string     `yaml:"title"`
	FPS        int        `yaml:"fps"`
	Screen     ScreenSpec `yaml:"screen"`
	StartLevel string     `yaml:"start_level"`
}

type ScreenSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

type PhysicsSpec struct {
	Gravity                float64 `yaml:"gravity"`
	BaseJumpStrength       float64 `yaml:"base_jump_strength"`
	BaseMovementSpeed      float64 `yaml:"base_movement_speed"`
	MaxFallSpeed           float64 `yaml:"max_fall_speed"`
	WallSlideSpeed         float64 `yaml:"wall_slide_speed"`
	WallJumpPush           float64 `yaml:"wall_jump_push"`
	WallJumpStrength       float64 `yaml:"wall_jump_strength"`
	CoyoteTimeFrames       int     `yaml:"coyote_time_frames"`
	JumpBufferFrames       int     `yaml:"jump_buffer_frames"`
	WallJumpCooldownFrames int     `yaml:"wall_jump_cooldown_frames"`
}

type PowerUpSpec struct {
	DurationMS         float64 `yaml:"duration_ms"`
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`
	JumpMultiplier     float64 `yaml:"jump_multiplier"`
	WallJumpMultiplier float64 `yaml:"wall_jump_multiplier"`
}

type BaconSpec struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BobSpeed     float64 `yaml:"bob_speed"`
	BobAmplitude float64 `yaml:"bob_amplitude"`
}

type LevelSpec struct {
	Platforms []common.Rect `yaml:"platforms"`
	Walls     []common.Rect `yaml:"walls"`
	Bacon     []Point       `yaml:"bacon"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadGameSpec reads the default config, preferring a copy on disk under
// prefabs/ over the embedded one.
func LoadGameSpec() (*GameSpec, error) {
	data, err := Load(DefaultConfigName)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", DefaultConfigName, err)
	}
	spec, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", DefaultConfigName, err)
	}
	return spec, nil
}

// LoadFile reads a config from an explicit path.
func LoadFile(path string) (*GameSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: read %s: %w", path, err)
	}
	spec, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", path, err)
	}
	return spec, nil
}

// Decode parses, fills defaults and validates a config document.
func Decode(data []byte) (*GameSpec, error) {
	var spec GameSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *GameSpec) applyDefaults() {
	if s.Game.FPS <= 0 {
		s.Game.FPS = defaultFPS
	}
	if s.Game.StartLevel == "" {
		s.Game.StartLevel = DefaultLevel
	}
	if s.Game.Title == "" {
		s.Game.Title = "Barkour"
	}

	if s.Physics.CoyoteTimeFrames == 0 {
		s.Physics.CoyoteTimeFrames = defaultCoyoteTimeFrames
	}
	if s.Physics.JumpBufferFrames == 0 {
		s.Physics.JumpBufferFrames = defaultJumpBufferFrames
	}
	if s.Physics.WallJumpCooldownFrames == 0 {
		s.Physics.WallJumpCooldownFrames = defaultWallJumpCooldownFrames
	}

	if s.PowerUp.SpeedMultiplier == 0 {
		s.PowerUp.SpeedMultiplier = 1
	}
	if s.PowerUp.JumpMultiplier == 0 {
		s.PowerUp.JumpMultiplier = 1
	}
	if s.PowerUp.WallJumpMultiplier == 0 {
		s.PowerUp.WallJumpMultiplier = 1
	}

	if s.Bacon.Width == 0 {
		s.Bacon.Width = defaultBaconWidth
	}
	if s.Bacon.Height == 0 {
		s.Bacon.Height = defaultBaconHeight
	}
	if s.Bacon.BobSpeed == 0 {
		s.Bacon.BobSpeed = defaultBaconBobSpeed
	}
	if s.Bacon.BobAmplitude == 0 {
		s.Bacon.BobAmplitude = defaultBaconBobAmplitude
	}
}

// Validate rejects documents the simulation cannot run with. It does not
// judge whether the tuning is fun.
func (s *GameSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spec", ErrInvalidSpec)
	}
	if s.Game.Screen.Width <= 0 || s.Game.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size %vx%v", ErrInvalidSpec, s.Game.Screen.Width, s.Game.Screen.Height)
	}
	if s.Player.Width <= 0 || s.Player.Height <= 0 {
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidSpec, s.Player.Width, s.Player.Height)
	}
	if s.Player.Width > s.Game.Screen.Width {
		return fmt.Errorf("%w: player wider than screen", ErrInvalidSpec)
	}
	if s.Physics.MaxFallSpeed <= 0 {
		return fmt.Errorf("%w: physics.max_fall_speed must be positive", ErrInvalidSpec)
	}
	if s.Physics.WallSlideSpeed < 0 {
		return fmt.Errorf("%w: physics.wall_slide_speed must not be negative", ErrInvalidSpec)
	}
	if s.Physics.CoyoteTimeFrames < 0 || s.Physics.JumpBufferFrames < 0 || s.Physics.WallJumpCooldownFrames < 0 {
		return fmt.Errorf("%w: frame counts must not be negative", ErrInvalidSpec)
	}
	if s.PowerUp.DurationMS < 0 {
		return fmt.Errorf("%w: powerup.duration_ms must not be negative", ErrInvalidSpec)
	}
	if s.PowerUp.SpeedMultiplier < 0 || s.PowerUp.JumpMultiplier < 0 || s.PowerUp.WallJumpMultiplier < 0 {
		return fmt.Errorf("%w: powerup multipliers must not be negative", ErrInvalidSpec)
	}
	for name, lvl := range s.Levels {
		if err := lvl.Validate(); err != nil {
			return fmt.Errorf("%w: level %q: %v", ErrInvalidSpec, name, err)
		}
	}
	return nil
}

func (l LevelSpec) Validate() error {
	for i, r := range l.Platforms {
		if r.Width < 0 || r.Height < 0 {
			return fmt.Errorf("platform %d has negative size", i)
		}
	}
	for i, r := range l.Walls {
		if r.Width < 0 || r.Height < 0 {
			return fmt.Errorf("wall %d has negative size", i)
		}
	}
	return nil
}

// Level returns an inline level by name.
func (s *GameSpec) Level(name string) (LevelSpec, bool) {
	if s == nil || s.Levels == nil {
		return LevelSpec{}, false
	}
	lvl, ok := s.Levels[name]
	return lvl, ok
}
