package prefabs

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const DefaultMechanicsName = "mechanics.yaml"

// MechanicsSheet lists reference values keyed by dotted config path.
type MechanicsSheet struct {
	Tolerance float64            `yaml:"tolerance"`
	Constants map[string]float64 `yaml:"constants"`
}

type AuditResult struct {
	Key      string
	Expected float64
	Actual   float64
	Missing  bool
	OK       bool
}

func LoadMechanicsSheet(path string) (*MechanicsSheet, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = Load(DefaultMechanicsName)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("prefabs: read mechanics sheet: %w", err)
	}

	var sheet MechanicsSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal mechanics sheet: %w", err)
	}
	if sheet.Tolerance <= 0 {
		sheet.Tolerance = 1e-6
	}
	return &sheet, nil
}

// Constants flattens the tunable numbers of the spec into dotted keys.
func (s *GameSpec) Constants() map[string]float64 {
	if s == nil {
		return nil
	}
	return map[string]float64{
		"game.screen.width":                 s.Game.Screen.Width,
		"game.screen.height":                s.Game.Screen.Height,
		"game.fps":                          float64(s.Game.FPS),
		"player.width":                      s.Player.Width,
		"player.height":                     s.Player.Height,
		"player.start_x":                    s.Player.StartX,
		"player.start_y":                    s.Player.StartY,
		"physics.gravity":                   s.Physics.Gravity,
		"physics.base_jump_strength":        s.Physics.BaseJumpStrength,
		"physics.base_movement_speed":       s.Physics.BaseMovementSpeed,
		"physics.max_fall_speed":            s.Physics.MaxFallSpeed,
		"physics.wall_slide_speed":          s.Physics.WallSlideSpeed,
		"physics.wall_jump_push":            s.Physics.WallJumpPush,
		"physics.wall_jump_strength":        s.Physics.WallJumpStrength,
		"physics.coyote_time_frames":        float64(s.Physics.CoyoteTimeFrames),
		"physics.jump_buffer_frames":        float64(s.Physics.JumpBufferFrames),
		"physics.wall_jump_cooldown_frames": float64(s.Physics.WallJumpCooldownFrames),
		"powerup.duration_ms":               s.PowerUp.DurationMS,
		"powerup.speed_multiplier":          s.PowerUp.SpeedMultiplier,
		"powerup.jump_multiplier":           s.PowerUp.JumpMultiplier,
		"powerup.wall_jump_multiplier":      s.PowerUp.WallJumpMultiplier,
		"bacon.width":                       s.Bacon.Width,
		"bacon.height":                      s.Bacon.Height,
		"bacon.bob_speed":                   s.Bacon.BobSpeed,
		"bacon.bob_amplitude":               s.Bacon.BobAmplitude,
	}
}

// Audit compares every constant on the sheet, sorted by key.
func Audit(spec *GameSpec, sheet *MechanicsSheet) []AuditResult {
	if spec == nil || sheet == nil {
		return nil
	}
	actual := spec.Constants()

	keys := make([]string, 0, len(sheet.Constants))
	for k := range sheet.Constants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]AuditResult, 0, len(keys))
	for _, k := range keys {
		want := sheet.Constants[k]
		got, ok := actual[k]
		res := AuditResult{Key: k, Expected: want, Actual: got, Missing: !ok}
		res.OK = ok && math.Abs(got-want) <= sheet.Tolerance
		out = append(out, res)
	}
	return out
}

// Failed counts results that did not match.
func Failed(results []AuditResult) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}
