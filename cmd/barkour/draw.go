package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/barkour/common"
	"github.com/milk9111/barkour/game"
	"github.com/milk9111/barkour/prefabs"
	"golang.org/x/image/colornames"
)

const hintText = "Arrow keys / A,D to move, Space to jump. Jump while sliding on a wall to wall jump!"

type palette struct {
	sky, ground, wall     color.Color
	body, dark, powered   color.Color
	baconPink, baconRed   color.Color
	glow, particle, debug color.Color
}

func newPalette(spec *prefabs.GameSpec) palette {
	return palette{
		sky:       spec.Color("sky_blue", colornames.Skyblue),
		ground:    spec.Color("ground_brown", colornames.Saddlebrown),
		wall:      spec.Color("wall_gray", colornames.Slategray),
		body:      spec.Color("tilly_beige", colornames.Tan),
		dark:      spec.Color("tilly_black", colornames.Black),
		powered:   spec.Color("tilly_powered", colornames.Gold),
		baconPink: spec.Color("bacon_pink", colornames.Hotpink),
		baconRed:  spec.Color("bacon_red", colornames.Crimson),
		glow:      spec.Color("power_glow", colornames.Lightyellow),
		particle:  spec.Color("wall_slide_particle", colornames.Lightsteelblue),
		debug:     colornames.Red,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.world.Snapshot()
	screen.Fill(g.palette.sky)

	for _, r := range snap.Platforms {
		fillRect(screen, r, g.palette.ground)
	}
	for _, r := range snap.Walls {
		fillRect(screen, r, g.palette.wall)
		strokeRect(screen, r, g.palette.dark)
	}
	for _, b := range snap.Bacon {
		if !b.Collected {
			g.drawBacon(screen, b)
		}
	}
	for _, p := range snap.Particles {
		vector.FillCircle(screen, float32(p.X), float32(p.Y), 3, withAlpha(g.palette.particle, p.Alpha), true)
	}
	g.drawTilly(screen, snap)

	hud := hintText
	if snap.Power.Active {
		hud = fmt.Sprintf("BACON POWER: %.1fs", snap.Power.RemainingMS/1000)
	}
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Bacon: %d/%d", snap.Collected(), len(snap.Bacon)), 10, 26)
	if g.statusTicks > 0 {
		ebitenutil.DebugPrintAt(screen, g.status, 10, 42)
	}
	if g.debug {
		g.drawDebug(screen, snap)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawTilly(screen *ebiten.Image, snap game.Snapshot) {
	p := snap.Player
	body := g.palette.body
	if snap.Power.Active {
		body = g.palette.powered
		cx, cy := p.X+p.Width/2, p.Y+p.Height/2
		left := snap.Power.RemainingMS / g.world.Spec().PowerUp.DurationMS
		glow := withAlpha(g.palette.glow, common.Lerp(0.2, 0.6, left))
		vector.FillCircle(screen, float32(cx), float32(cy), float32(p.Width*0.8), glow, true)
	}

	fillRect(screen, common.NewRect(p.X, p.Y+p.Height*0.3, p.Width, p.Height*0.7), body)

	headX := p.X + p.Width*0.45
	tailX := p.X - p.Width*0.15
	earX := headX + p.Width*0.35
	eyeX := headX + p.Width*0.35
	if g.facingLeft {
		headX = p.X - p.Width*0.05
		tailX = p.X + p.Width
		earX = headX + p.Width*0.1
		eyeX = headX + p.Width*0.15
	}
	fillRect(screen, common.NewRect(headX, p.Y, p.Width*0.6, p.Height*0.5), body)
	fillRect(screen, common.NewRect(earX, p.Y-p.Height*0.15, p.Width*0.15, p.Height*0.25), g.palette.dark)
	fillRect(screen, common.NewRect(tailX, p.Y+p.Height*0.35, p.Width*0.15, p.Height*0.12), g.palette.dark)
	vector.FillCircle(screen, float32(eyeX), float32(p.Y+p.Height*0.2), 2.5, g.palette.dark, true)
}

func (g *Game) drawBacon(screen *ebiten.Image, b game.BaconSnapshot) {
	r := common.NewRect(b.X, b.Y, b.Width, b.Height)
	fillRect(screen, r, g.palette.baconPink)
	stripe := b.Height / 5
	fillRect(screen, common.NewRect(b.X, b.Y+stripe, b.Width, stripe), g.palette.baconRed)
	fillRect(screen, common.NewRect(b.X, b.Y+3*stripe, b.Width, stripe), g.palette.baconRed)
}

func (g *Game) drawDebug(screen *ebiten.Image, snap game.Snapshot) {
	strokeRect(screen, snap.Rect(), g.palette.debug)
	for _, b := range snap.Bacon {
		if !b.Collected {
			strokeRect(screen, common.NewRect(b.X, b.Y, b.Width, b.Height), g.palette.debug)
		}
	}

	p := snap.Player
	lines := []string{
		fmt.Sprintf("TPS %.0f  FPS %.0f  frame %d", ebiten.ActualTPS(), ebiten.ActualFPS(), snap.Frame),
		fmt.Sprintf("pos %.1f,%.1f  vel %.1f,%.1f", p.X, p.Y, p.VX, p.VY),
		fmt.Sprintf("state %s  wall %s", p.State, p.TouchingWall),
		fmt.Sprintf("coyote %d  buffer %d  cooldown %d", p.CoyoteFrames, p.JumpBufferFrames, p.WallJumpCooldown),
	}
	if g.lastEvent.Type != "" {
		lines = append(lines, fmt.Sprintf("last event %s @%d", g.lastEvent.Type, g.lastEvent.Frame))
	}
	y := g.screenH - 16*len(lines) - 8
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, y)
		y += 16
	}
}

func fillRect(dst *ebiten.Image, r common.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}

func strokeRect(dst *ebiten.Image, r common.Rect, c color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1.5, c, false)
}

func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	a := common.Clamp(alpha, 0, 1)
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a * 255)}
}
