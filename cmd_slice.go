package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sliceTimeout time.Duration
	sliceCell    int
)

var sliceCmd = &cobra.Command{
	Use:   "slice [level] [outdir]",
	Short: "Cut a level's picture into JPEG tiles",
	Long: `Resolves the level, loads its picture and writes one JPEG per tile to outdir,
named tile_<row>_<col>.jpg.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id < 1 {
			return fmt.Errorf("invalid level %q", args[0])
		}
		cfg := app.resolver.Resolve(id)
		cell := sliceCell
		if cell <= 0 {
			cell = int(app.Geometry().CellSize(cfg.GridSize))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), sliceTimeout)
		defer cancel()
		tiles, err := app.slicer.Slice(ctx, cfg.ImageSrc, cfg.GridSize, cell)
		if err != nil {
			return err
		}

		outDir := args[1]
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", outDir, err)
		}
		for _, t := range tiles {
			name := filepath.Join(outDir, fmt.Sprintf("tile_%02d_%02d.jpg", t.Row, t.Col))
			if err := os.WriteFile(name, t.Encoded, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
		}
		app.logger.Info("tiles written",
			zap.Int("level", cfg.ID),
			zap.Int("tiles", len(tiles)),
			zap.Int("cell", cell),
			zap.String("dir", outDir))
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tiles of %dpx in %s\n", cfg, len(tiles), cell, outDir)
		return nil
	},
}

func init() {
	sliceCmd.Flags().DurationVar(&sliceTimeout, "timeout", 30*time.Second, "Give up loading the picture after this long")
	sliceCmd.Flags().IntVar(&sliceCell, "cell", 0, "Tile size in pixels (default: board size / grid)")
}
