package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pbi/internal/scoring"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion count and level distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		total, err := st.CounterRepo().Count(ctx)
		if err != nil {
			return fmt.Errorf("read completion count: %w", err)
		}
		dist, err := st.ResultRepo().LevelDistribution(ctx)
		if err != nil {
			return fmt.Errorf("read level distribution: %w", err)
		}

		fmt.Printf("Completed assessments: %d\n\n", total)

		recorded := 0
		for _, n := range dist {
			recorded += n
		}

		fmt.Printf("%-18s  %6s  %s\n", "Level", "Count", "Share")
		fmt.Println(strings.Repeat("─", 50))
		for _, l := range scoring.AllLevels() {
			n := dist[l.Name]
			share := 0.0
			if recorded > 0 {
				share = float64(n) / float64(recorded)
			}
			bar := strings.Repeat("█", int(share*20+0.5))
			fmt.Printf("%-18s  %6d  %5.1f%% %s\n", l.Name, n, share*100, bar)
		}
		return nil
	},
}
