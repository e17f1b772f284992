package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/milk9111/barkour/levels"
	"github.com/milk9111/barkour/obj"
	"github.com/milk9111/barkour/prefabs"
)

var ErrNilSpec = errors.New("game: nil spec")

// FrameInput is what the host feeds one step. Jump is edge-triggered and only
// counts for the step it is passed to.
type FrameInput struct {
	DeltaMS float64
	Left    bool
	Right   bool
	Jump    bool
}

// MoveX turns the held keys into a direction. Left wins when both are held.
func (in FrameInput) MoveX() int {
	switch {
	case in.Left:
		return -1
	case in.Right:
		return 1
	default:
		return 0
	}
}

// World owns everything a frame touches. It is not safe for concurrent use.
type World struct {
	spec   *prefabs.GameSpec
	level  *levels.Level
	logger *log.Logger

	player  *obj.Player
	power   *obj.PowerUp
	pickups []*obj.Pickup

	scheduler *Scheduler
	events    EventQueue
	frame     int
	input     FrameInput
}

// NewWorld builds a world for one level. A nil logger discards output.
func NewWorld(spec *prefabs.GameSpec, level *levels.Level, logger *log.Logger) (*World, error) {
	if spec == nil {
		return nil, ErrNilSpec
	}
	if level == nil {
		return nil, fmt.Errorf("game: nil level: %w", levels.ErrUnknownLevel)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &World{
		spec:      spec,
		level:     level,
		logger:    logger,
		player:    obj.NewPlayer(spec),
		power:     obj.NewPowerUp(spec.PowerUp),
		scheduler: NewScheduler(DefaultSystems()...),
	}
	w.spawnPickups()

	logger.Debug("world ready", "level", level.Name, "platforms", len(level.Platforms), "walls", len(level.Walls), "bacon", len(w.pickups))
	return w, nil
}

func (w *World) spawnPickups() {
	w.pickups = w.pickups[:0]
	for _, pt := range w.level.Bacon {
		w.pickups = append(w.pickups, obj.NewPickup(pt.X, pt.Y, w.spec.Bacon))
	}
}

// Step advances the world one frame. Events from the previous step that were
// not drained are dropped.
func (w *World) Step(in FrameInput) {
	w.events.flush()
	w.frame++
	w.input = in
	w.scheduler.Update(w)
	w.input.Jump = false
}

func (w *World) deltaMS() float64 {
	if w.input.DeltaMS > 0 {
		return w.input.DeltaMS
	}
	if w.spec.Game.FPS > 0 {
		return 1000 / float64(w.spec.Game.FPS)
	}
	return 1000.0 / 60
}

func (w *World) emit(t EventType, data any) {
	w.events.Push(Event{Type: t, Frame: w.frame, Data: data})
	w.logger.Debug("event", "type", t, "frame", w.frame, "data", data)
}

// Events drains what the last step emitted.
func (w *World) Events() []Event {
	return w.events.Drain()
}

// Reset restores the level to its initial state: player at spawn, boost off,
// every pickup back in place.
func (w *World) Reset() {
	w.player.Reset()
	w.power.Reset()
	w.spawnPickups()
	w.events.flush()
	w.frame = 0
	w.input = FrameInput{}
	w.logger.Info("world reset", "level", w.level.Name)
}

// ApplySpec swaps in new tuning. Positions, contacts, timers and the level
// are left alone.
func (w *World) ApplySpec(spec *prefabs.GameSpec) error {
	if spec == nil {
		return ErrNilSpec
	}
	w.spec = spec
	w.player.Configure(spec.Physics, spec.Game.Screen.Width)
	w.power.Configure(spec.PowerUp)
	w.logger.Info("spec applied", "gravity", spec.Physics.Gravity, "jump", spec.Physics.BaseJumpStrength, "speed", spec.Physics.BaseMovementSpeed)
	return nil
}

func (w *World) Frame() int              { return w.frame }
func (w *World) Spec() *prefabs.GameSpec { return w.spec }
func (w *World) Level() *levels.Level    { return w.level }
func (w *World) Player() *obj.Player     { return w.player }
func (w *World) Power() *obj.PowerUp     { return w.power }
func (w *World) Scheduler() *Scheduler   { return w.scheduler }
func (w *World) Logger() *log.Logger     { return w.logger }

func (w *World) Pickups() []*obj.Pickup {
	return append([]*obj.Pickup(nil), w.pickups...)
}

func (w *World) CollectedCount() int {
	n := 0
	for _, p := range w.pickups {
		if p.Collected {
			n++
		}
	}
	return n
}
