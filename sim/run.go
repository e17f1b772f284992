package sim

import (
	"context"
	"fmt"

	"github.com/milk9111/barkour/game"
)

const DefaultFrames = 600

type Options struct {
	Frames  int
	DeltaMS float64
}

// Result tallies the events of a headless run.
type Result struct {
	Frames       int
	Jumps        int
	WallJumps    int
	Landings     int
	Collected    int
	PowerExpired int
	Final        game.Snapshot
}

// Run steps the world with input from the script until the frame budget is
// spent or ctx is done. The partial result is returned with any error.
func Run(ctx context.Context, w *game.World, script *Script, opts Options) (Result, error) {
	if opts.Frames <= 0 {
		opts.Frames = DefaultFrames
	}
	if opts.DeltaMS <= 0 {
		opts.DeltaMS = 1000 / float64(max(w.Spec().Game.FPS, 1))
	}
	logger := w.Logger()
	screenWidth := w.Spec().Game.Screen.Width

	var res Result
	for frame := 0; frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			res.Final = w.Snapshot()
			return res, fmt.Errorf("sim: stopped at frame %d: %w", frame, err)
		}

		in, err := script.Decide(frame, w.Snapshot(), screenWidth)
		if err != nil {
			res.Final = w.Snapshot()
			return res, err
		}
		in.DeltaMS = opts.DeltaMS

		w.Step(in)
		res.Frames++
		for _, evt := range w.Events() {
			res.tally(evt)
		}
	}

	res.Final = w.Snapshot()
	logger.Info("sim done", "script", script.Name(), "frames", res.Frames, "jumps", res.Jumps, "wall_jumps", res.WallJumps, "bacon", res.Collected)
	return res, nil
}

func (r *Result) tally(evt game.Event) {
	switch evt.Type {
	case game.EventJump:
		r.Jumps++
	case game.EventWallJump:
		r.WallJumps++
	case game.EventLanded:
		r.Landings++
	case game.EventPickupCollected:
		r.Collected++
	case game.EventPowerExpired:
		r.PowerExpired++
	}
}
