package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/milk9111/barkour/common"
	"github.com/milk9111/barkour/game"
	"github.com/milk9111/barkour/levels"
	"github.com/milk9111/barkour/prefabs"
)

func restingWorld(t *testing.T, bacon ...prefabs.Point) *game.World {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatal(err)
	}
	spec.Player.StartX = 100
	spec.Player.StartY = 460
	level := &levels.Level{
		Name:      "flat",
		Platforms: []common.Rect{common.NewRect(0, 500, 800, 100)},
		Bacon:     bacon,
	}
	w, err := game.NewWorld(spec, level, nil)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func compile(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Compile("test", []byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return s
}

func TestEmbeddedScriptsCompile(t *testing.T) {
	for _, name := range []string{"idle", "run_right", "zigzag.tengo", "scripts/idle.tengo"} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadScript(name); err != nil {
				t.Fatalf("LoadScript(%q): %v", name, err)
			}
		})
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestCompileErrors(t *testing.T) {
	if _, err := Compile("nodecide", []byte(`x := 1`)); err == nil {
		t.Fatalf("expected compile error without decide")
	}

	bad := []struct {
		name string
		src  string
	}{
		{"not_a_map", `decide := func(frame, player, state) { return 5 }`},
		{"int_jump", `decide := func(frame, player, state) { return {move: 0, jump: 1} }`},
		{"string_jump", `decide := func(frame, player, state) { return {move: 1, jump: "yes"} }`},
	}
	for _, c := range bad {
		t.Run(c.name, func(t *testing.T) {
			s := compile(t, c.src)
			res, err := Run(context.Background(), restingWorld(t), s, Options{Frames: 3})
			if !errors.Is(err, ErrBadDecision) {
				t.Fatalf("expected ErrBadDecision, got %v", err)
			}
			if res.Frames != 0 {
				t.Fatalf("frames = %d, want 0", res.Frames)
			}
		})
	}
}

func TestDecideWithoutJumpKey(t *testing.T) {
	s := compile(t, `decide := func(frame, player, state) { return {move: 1} }`)
	res, err := Run(context.Background(), restingWorld(t), s, Options{Frames: 10})
	if err != nil {
		t.Fatal(err)
	}
	if res.Jumps != 0 || res.Final.Player.X <= 100 {
		t.Fatalf("result = %+v", res)
	}
}

func TestIdleRun(t *testing.T) {
	s, err := LoadScript("idle")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(context.Background(), restingWorld(t), s, Options{Frames: 120, DeltaMS: 16})
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 120 || res.Jumps != 0 || res.Landings != 1 {
		t.Fatalf("result = %+v", res)
	}
	if res.Final.Player.X != 100 || res.Final.Player.Y != 460 || !res.Final.Player.OnGround {
		t.Fatalf("final player = %+v", res.Final.Player)
	}
}

func TestSingleJump(t *testing.T) {
	s := compile(t, `decide := func(frame, player, state) { return {move: 0, jump: frame == 5} }`)
	res, err := Run(context.Background(), restingWorld(t), s, Options{Frames: 300})
	if err != nil {
		t.Fatal(err)
	}
	if res.Jumps != 1 || res.WallJumps != 0 || res.Landings != 2 {
		t.Fatalf("result = %+v", res)
	}
}

func TestScriptStatePersists(t *testing.T) {
	s := compile(t, `
decide := func(frame, player, state) {
	n := 0
	if is_int(state.n) {
		n = state.n
	}
	n += 1
	state.n = n
	return {move: 0, jump: n == 3}
}`)
	res, err := Run(context.Background(), restingWorld(t), s, Options{Frames: 200})
	if err != nil {
		t.Fatal(err)
	}
	if res.Jumps != 1 {
		t.Fatalf("jumps = %d, want 1", res.Jumps)
	}
}

func TestRunRightCollectsBacon(t *testing.T) {
	s, err := LoadScript("run_right")
	if err != nil {
		t.Fatal(err)
	}
	w := restingWorld(t, prefabs.Point{X: 150, Y: 470})
	res, err := Run(context.Background(), w, s, Options{Frames: 60, DeltaMS: 16})
	if err != nil {
		t.Fatal(err)
	}
	if res.Collected != 1 || res.Final.Collected() != 1 {
		t.Fatalf("collected = %d", res.Collected)
	}
	if res.Final.Player.X <= 100 {
		t.Fatalf("player did not move right: x = %v", res.Final.Player.X)
	}
	if res.Jumps == 0 {
		t.Fatalf("expected a hop after standing on the ground")
	}
}

func TestRunHonoursContext(t *testing.T) {
	s, err := LoadScript("idle")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, restingWorld(t), s, Options{Frames: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Frames != 0 {
		t.Fatalf("frames = %d, want 0", res.Frames)
	}
}

func TestZigzagStaysOnScreen(t *testing.T) {
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatal(err)
	}
	level, err := levels.Resolve(spec, "demo")
	if err != nil {
		t.Fatal(err)
	}
	w, err := game.NewWorld(spec, level, nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript("zigzag")
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(context.Background(), w, s, Options{Frames: 1200})
	if err != nil {
		t.Fatal(err)
	}
	x := res.Final.Player.X
	if x < 0 || x > spec.Game.Screen.Width-spec.Player.Width {
		t.Fatalf("x = %v out of bounds", x)
	}
	if res.Jumps+res.WallJumps == 0 {
		t.Fatalf("zigzag never jumped")
	}
}
