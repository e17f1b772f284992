package main

import (
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/barkour/audio"
	"github.com/milk9111/barkour/game"
	"github.com/milk9111/barkour/prefabs"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
)

var (
	flagPlayLevel string
	flagPlayWatch bool
	flagPlayDebug bool
	flagPlayMute  bool
	flagVolume    float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump (jump again while sliding on a wall to wall jump)
  Esc/P            - Pause menu
  R                - Restart the level
  F2               - Copy a snapshot of the world to the clipboard
  F3               - Toggle debug overlay

Examples:
  barkour play
  barkour play --level tower
  barkour play --config prefabs/barkour.json --watch`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayLevel, "level", "", "Level name (default: the config's start level)")
	playCmd.Flags().BoolVar(&flagPlayWatch, "watch", false, "Reload the config when it changes on disk")
	playCmd.Flags().BoolVar(&flagPlayDebug, "debug", false, "Start with the debug overlay on")
	playCmd.Flags().BoolVar(&flagPlayMute, "mute", false, "Disable sound cues")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.3, "Sound cue volume, 0 to 1")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger("play")

	spec, level, err := loadSpecAndLevel(flagPlayLevel)
	if err != nil {
		return err
	}
	world, err := game.NewWorld(spec, level, logger)
	if err != nil {
		return err
	}
	g := NewGame(world, logger, flagPlayDebug)

	if flagPlayWatch {
		path := watchedConfigPath()
		watcher, err := prefabs.NewWatcher(filepath.Dir(path))
		if err != nil {
			logger.Warn("hot reload disabled", "path", path, "err", err)
		} else {
			defer watcher.Close()
			g.watch(watcher, path)
			logger.Info("watching config", "path", path)
		}
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboardOK = true
	}

	if !flagPlayMute {
		board := audio.NewBoard(flagVolume)
		if err := board.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer board.Close()
			g.sound = board
		}
	}

	ebiten.SetWindowTitle(spec.Game.Title)
	ebiten.SetWindowSize(g.screenW, g.screenH)
	ebiten.SetTPS(spec.Game.FPS)

	logger.Info("starting", "level", level.Name, "fps", spec.Game.FPS)
	return ebiten.RunGame(g)
}

// watchedConfigPath is --config, or the on-disk override of the embedded
// config.
func watchedConfigPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return filepath.Join("prefabs", prefabs.DefaultConfigName)
}
