package main

import (
	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/barkour/audio"
	"github.com/milk9111/barkour/game"
	"github.com/milk9111/barkour/prefabs"
	"golang.design/x/clipboard"
)

const statusFrames = 120

// Game adapts a game.World to ebiten. Everything here runs on the ebiten
// update goroutine, including hot reloads.
type Game struct {
	world   *game.World
	logger  *log.Logger
	palette palette

	screenW, screenH int
	debug            bool
	paused           bool
	quit             bool
	pauseUI          *ebitenui.UI

	watcher    *prefabs.Watcher
	configPath string

	clipboardOK bool
	sound       *audio.Board
	facingLeft  bool

	status      string
	statusTicks int
	lastEvent   game.Event
}

func NewGame(world *game.World, logger *log.Logger, debug bool) *Game {
	spec := world.Spec()
	g := &Game{
		world:   world,
		logger:  logger,
		palette: newPalette(spec),
		screenW: int(spec.Game.Screen.Width),
		screenH: int(spec.Game.Screen.Height),
		debug:   debug,
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

// watch hooks a watcher up; changes to configPath are applied on the next
// update.
func (g *Game) watch(w *prefabs.Watcher, configPath string) {
	g.watcher = w
	g.configPath = configPath
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.drainWatcher()

	if pausePressed() {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Reset()
	}

	in := readInput()
	in.DeltaMS = 1000 / float64(ebiten.TPS())
	g.world.Step(in)

	events := g.world.Events()
	g.sound.Play(events...)
	for _, evt := range events {
		g.lastEvent = evt
		if evt.Type == game.EventPickupCollected && g.world.CollectedCount() == len(g.world.Pickups()) {
			g.setStatus("All the bacon! Good girl, Tilly!")
		}
	}
	if vx := g.world.Player().Vel.X; vx < 0 {
		g.facingLeft = true
	} else if vx > 0 {
		g.facingLeft = false
	}
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if prefabs.SamePath(name, g.configPath) {
				g.reload()
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("config watcher", "err", err)
		default:
			return
		}
	}
}

// reload applies the config on disk. A broken file is logged and the running
// tuning stays in force.
func (g *Game) reload() {
	spec, err := prefabs.LoadFile(g.configPath)
	if err != nil {
		g.logger.Warn("config reload failed, keeping previous", "path", g.configPath, "err", err)
		g.setStatus("config reload failed")
		return
	}
	if err := g.world.ApplySpec(spec); err != nil {
		g.logger.Warn("apply config", "err", err)
		return
	}
	g.palette = newPalette(spec)
	ebiten.SetTPS(spec.Game.FPS)
	g.setStatus("config reloaded")
}

func (g *Game) copySnapshot() {
	if !g.clipboardOK {
		g.setStatus("clipboard unavailable")
		return
	}
	data, err := g.world.Snapshot().YAML()
	if err != nil {
		g.logger.Warn("snapshot", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.setStatus("snapshot copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusFrames
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
