package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/attacq/internal/badges"
	"github.com/abhisek/attacq/internal/tier"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your tier tally and badge collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.quiz.LoadProgress(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-28s  %s\n", "Tier", "Rounds")
		fmt.Fprintln(out, strings.Repeat("─", 38))
		for _, id := range tier.All() {
			mark := " "
			if id == p.Badge {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %s %-24s  %d\n", mark, id.Icon(), id.Label(), p.Tally[id])
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Plays this epoch: %d\n", p.PlayCount)

		catalog := badges.Default()
		prog := catalog.Progress(p.Earned)
		fmt.Fprintf(out, "Badges collected: %d/%d (%d%%)\n", prog.Earned, prog.Total, prog.Percentage)
		for _, id := range p.Earned {
			if b, ok := catalog.ByID(id); ok {
				fmt.Fprintf(out, "  %s  %s\n", b.ID, b.Title)
			}
		}

		rogue := "locked"
		switch {
		case p.ExtendedActive:
			rogue = "active"
		case p.ExtendedUnlocked:
			rogue = "unlocked"
		}
		fmt.Fprintf(out, "Rogue mode: %s\n", rogue)
		return nil
	},
}
