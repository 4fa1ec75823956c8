package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	levelsFrom  int
	levelsCount int
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List resolved level configurations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if levelsCount <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tGRID\tPIECES\tDIFFICULTY\tCATEGORY\tIMAGE")
		for id := max(levelsFrom, 1); id < max(levelsFrom, 1)+levelsCount; id++ {
			cfg := app.resolver.Resolve(id)
			fmt.Fprintf(w, "%d\t%dx%d\t%d\t%s\t%s\t%s\n",
				cfg.ID, cfg.GridSize, cfg.GridSize, cfg.Pieces(), cfg.Difficulty, cfg.Category, cfg.ImageSrc)
		}
		return w.Flush()
	},
}

func init() {
	levelsCmd.Flags().IntVar(&levelsFrom, "from", 1, "First level to list")
	levelsCmd.Flags().IntVarP(&levelsCount, "count", "n", 20, "Number of levels to list")
}
