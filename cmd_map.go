package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/zensnap/levels"
)

var (
	mapHighest int
	mapWidth   float64
	mapNodes   bool
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the level map path as SVG path data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		highest := mapHighest
		if highest <= 0 {
			highest = app.book.Load(cmd.Context()).HighestLevel
		}
		nodes := levels.Layout(levels.VisibleCount(highest), mapWidth/2, levels.NodeGap)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, levels.Path(nodes))
		if !mapNodes {
			return nil
		}
		for _, n := range nodes {
			fmt.Fprintf(out, "%3d  %7.1f %7.1f  %s\n", n.Level, n.X, n.Y, levels.Status(n.Level, highest))
		}
		return nil
	},
}

func init() {
	mapCmd.Flags().IntVar(&mapHighest, "highest", 0, "Highest unlocked level (default: from saved progress)")
	mapCmd.Flags().Float64Var(&mapWidth, "width", 400, "Map width in pixels")
	mapCmd.Flags().BoolVar(&mapNodes, "nodes", false, "Also list node positions and status")
}
