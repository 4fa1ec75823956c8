package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milk9111/zensnap/config"
	"github.com/milk9111/zensnap/levels"
)

var (
	// Global flags
	configPath string
	debug      bool
	offline    bool

	// Game flags
	startLevel int

	app *App
)

var rootCmd = &cobra.Command{
	Use:   "zensnap",
	Short: "ZenSnap - a calm jigsaw puzzle game",
	Long: `ZenSnap cuts a picture into a square grid of tiles and scatters them in a
tray below the board. Drag every tile into its cell to finish the level.

Run without arguments to open the level map.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = NewApp(configPath, debug, offline)
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			if err := app.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close: %v\n", err)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to zensnap.yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging and the FPS overlay")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Use generated placeholder pictures instead of downloading")

	rootCmd.Flags().IntVarP(&startLevel, "level", "l", 0, "Open this level directly instead of the map")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(mapCmd)
}

func runGame(cmd *cobra.Command) error {
	win := app.cfg.Window
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	game := NewGame(cmd.Context(), app, debug)
	defer game.Close()

	if startLevel > 0 {
		game.OpenLevel(levels.Normalize(startLevel))
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		app.logger.Error("game exited", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
