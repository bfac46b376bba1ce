package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the tier tally, held badge and play count",
	Long: `Wipe the tier tally, held badge and play count.

With --all the rogue mode flags are cleared too, and with --earned the
badge collection is emptied as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		earned, _ := cmd.Flags().GetBool("earned")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		switch {
		case earned:
			err = e.repo.ResetAll(ctx, true)
		case all:
			err = e.repo.ResetAll(ctx, false)
		default:
			err = e.repo.Reset(ctx)
		}
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress wiped. The machines have forgotten you.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also clear rogue mode flags")
	resetCmd.Flags().Bool("earned", false, "Also empty the badge collection (implies --all)")
}
