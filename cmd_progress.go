package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milk9111/zensnap/progress"
)

var progressJSON bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or reset saved progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved progress record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := app.book.Load(cmd.Context())
		out := cmd.OutOrStdout()
		if progressJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}
		printProgress(cmd, p)
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every completed level",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.book.Reset(cmd.Context()); err != nil {
			return err
		}
		app.logger.Info("progress reset", zap.String("storage", app.cfg.Storage.Path))
		fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
		return nil
	},
}

func printProgress(cmd *cobra.Command, p progress.UserProgress) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "highest unlocked level: %d\n", p.HighestLevel)
	if len(p.Stars) == 0 {
		fmt.Fprintln(out, "no completed levels")
		return
	}
	ids := make([]int, 0, len(p.Stars))
	for id := range p.Stars {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	total := 0
	for _, id := range ids {
		fmt.Fprintf(out, "  level %3d  %s\n", id, starString(p.Stars[id]))
		total += p.Stars[id]
	}
	fmt.Fprintf(out, "total stars: %d / %d\n", total, len(ids)*3)
}

func starString(stars int) string {
	b := []byte("---")
	for i := 0; i < stars && i < len(b); i++ {
		b[i] = '*'
	}
	return string(b)
}

func init() {
	progressShowCmd.Flags().BoolVar(&progressJSON, "json", false, "Print the raw record as JSON")
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}
