package sim

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/barkour/game"
	"github.com/milk9111/barkour/prefabs"
)

var ErrBadDecision = errors.New("sim: bad decide answer")

// Input scripts define `decide := func(frame, player, state) { ... }` and
// return {move: -1|0|1, jump: bool}. state is a map kept across frames.
const decideDispatchScript = `
__result = decide(__frame, __player, __state)
`

// Script is a compiled input script. It is not safe for concurrent use.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("sim: load script %s: %w", name, err)
	}
	return Compile(name, src)
}

func Compile(name string, src []byte) (*Script, error) {
	full := string(src) + "\n" + decideDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__frame", 0)
	_ = script.Add("__player", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__result", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("sim: compile %s: %w", name, err)
	}
	return &Script{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *Script) Name() string { return s.name }

// Decide runs the script for one frame and turns its answer into host input.
func (s *Script) Decide(frame int, snap game.Snapshot, screenWidth float64) (game.FrameInput, error) {
	player := map[string]any{
		"x":            snap.Player.X,
		"y":            snap.Player.Y,
		"vx":           snap.Player.VX,
		"vy":           snap.Player.VY,
		"max_x":        screenWidth - snap.Player.Width,
		"on_ground":    snap.Player.OnGround,
		"state":        snap.Player.State,
		"power_active": snap.Power.Active,
		"collected":    snap.Collected(),
	}

	if err := s.compiled.Set("__frame", frame); err != nil {
		return game.FrameInput{}, err
	}
	if err := s.compiled.Set("__player", player); err != nil {
		return game.FrameInput{}, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return game.FrameInput{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return game.FrameInput{}, fmt.Errorf("sim: run %s frame %d: %w", s.name, frame, err)
	}

	out := s.compiled.Get("__result").Map()
	if out == nil {
		return game.FrameInput{}, fmt.Errorf("%w (script %s, frame %d)", ErrBadDecision, s.name, frame)
	}

	var in game.FrameInput
	switch move := toInt(out["move"]); {
	case move < 0:
		in.Left = true
	case move > 0:
		in.Right = true
	}
	if v, ok := out["jump"]; ok {
		jump, isBool := v.(bool)
		if !isBool {
			return game.FrameInput{}, fmt.Errorf("%w: jump must be a bool, got %T (script %s, frame %d)", ErrBadDecision, v, s.name, frame)
		}
		in.Jump = jump
	}
	return in, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
