package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/milk9111/barkour/game"
	"github.com/milk9111/barkour/sim"
	"github.com/spf13/cobra"
)

var (
	flagSimScript  string
	flagSimLevel   string
	flagSimFrames  int
	flagSimDeltaMS float64
	flagSimDump    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a level headless, driven by a tengo input script",
	Long: `Steps the world without a window. The script defines

  decide := func(frame, player, state) { return {move: 1, jump: false} }

and is called once per frame. Scripts are looked up on disk first, then among
the embedded scripts (idle, run_right, zigzag).

Examples:
  barkour sim --script run_right --frames 600
  barkour sim --script ./my.tengo --level tower --dump`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimScript, "script", "run_right", "Input script path or embedded script name")
	simCmd.Flags().StringVar(&flagSimLevel, "level", "", "Level name (default: the config's start level)")
	simCmd.Flags().IntVar(&flagSimFrames, "frames", sim.DefaultFrames, "Number of frames to simulate")
	simCmd.Flags().Float64Var(&flagSimDeltaMS, "delta-ms", 0, "Milliseconds per frame (default: 1000/fps)")
	simCmd.Flags().BoolVar(&flagSimDump, "dump", false, "Print the final snapshot as YAML")
}

func runSim(cmd *cobra.Command, args []string) error {
	logger := newLogger("sim")

	spec, level, err := loadSpecAndLevel(flagSimLevel)
	if err != nil {
		return err
	}
	script, err := sim.LoadScript(flagSimScript)
	if err != nil {
		return err
	}
	world, err := game.NewWorld(spec, level, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := sim.Run(ctx, world, script, sim.Options{Frames: flagSimFrames, DeltaMS: flagSimDeltaMS})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "level:       %s\n", level.Name)
	fmt.Fprintf(out, "frames:      %d\n", res.Frames)
	fmt.Fprintf(out, "jumps:       %d (wall %d)\n", res.Jumps, res.WallJumps)
	fmt.Fprintf(out, "landings:    %d\n", res.Landings)
	fmt.Fprintf(out, "bacon:       %d/%d\n", res.Collected, len(res.Final.Bacon))
	fmt.Fprintf(out, "final:       x=%.1f y=%.1f %s\n", res.Final.Player.X, res.Final.Player.Y, res.Final.Player.State)

	if flagSimDump {
		data, err := res.Final.YAML()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "---\n%s", data)
	}
	return nil
}
