package main

import (
	"github.com/gonewx/towerdefense/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var flagTileSize float64

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the desktop viewer",
	Long: `Open a top-down window on the simulation.

Controls:
  Left click          - Toggle wall
  Shift + left click  - Toggle tower of the selected type
  Right click         - Toggle spawn point
  Shift + right click - Toggle destination
  1 / 2               - Select laser / mortar tower
  Space               - Pause
  + / -               - Play speed
  V                   - Toggle path arrows
  B                   - Begin new game
  F11                 - Fullscreen`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagTileSize, "tile-size", app.DefaultTileSize, "Pixels per tile")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	g, err := newGame(logger)
	if err != nil {
		return err
	}

	a := app.NewApp(g, app.Config{TileSize: flagTileSize, Logger: logger})
	ebiten.SetWindowSize(a.WindowSize())
	ebiten.SetWindowTitle("Tower Defense")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(a)
}
