package main

import (
	"io"

	"github.com/gonewx/towerdefense/pkg/tui"
	"github.com/spf13/cobra"
)

var flagTickRate int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the terminal viewer",
	Long: `Run the simulation inside the terminal.

Controls:
  Arrows / hjkl - Move cursor
  Enter         - Toggle wall
  T             - Toggle tower of the selected type
  S / D         - Toggle spawn point / destination
  1 / 2         - Select laser / mortar tower
  Space         - Pause
  + / -         - Play speed
  V             - Toggle path arrows
  B             - Begin new game
  Q / Ctrl+C    - Quit`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagTickRate, "fps", tui.DefaultTickRate, "Simulation ticks per second")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	// 日志会破坏全屏界面，只在 --verbose 时保留
	if !flagVerbose {
		logger.SetOutput(io.Discard)
	}
	g, err := newGame(logger)
	if err != nil {
		return err
	}
	return tui.Run(g, flagTickRate)
}
