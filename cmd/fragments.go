package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/attacq/internal/fragcache"
	"github.com/abhisek/attacq/internal/fragment"
	"github.com/abhisek/attacq/internal/minigame"
)

var fragmentsCmd = &cobra.Command{
	Use:   "fragments",
	Short: "Inspect mini-game fragments",
}

var fragmentsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch and parse every registered mini-game fragment",
	RunE: func(cmd *cobra.Command, args []string) error {
		preview, _ := cmd.Flags().GetBool("preview")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		reg, err := minigame.EmbeddedRegistry()
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}

		var fetcher fragcache.Fetcher = fragcache.FSFetcher{FS: minigame.Fragments()}
		source := "embedded"
		if cfg.MiniGames.FragmentsURL != "" {
			fetcher = fragcache.NewHTTPFetcher(cfg.MiniGames.FragmentsURL)
			source = cfg.MiniGames.FragmentsURL
		}
		cache := fragcache.New(fetcher, fragcache.WithFetchTimeout(cfg.Cache.FetchTimeout))
		defer cache.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checking fragments from %s\n\n", source)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		failed := 0
		for _, id := range reg.IDs() {
			desc, _ := reg.Lookup(id)
			key := minigame.Key(desc)
			markup, err := cache.FetchCached(ctx, key)
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %-26s %v\n", id, err)
				continue
			}
			frag, err := fragment.Parse(markup)
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %-26s %v\n", id, err)
				continue
			}
			fmt.Fprintf(out, "✓ %-26s %d buttons  v=%s  limit %s\n",
				id, len(frag.Buttons), fragcache.Version(key), desc.TimeLimit)
			if preview {
				fmt.Fprintln(out, indent(frag.Text()))
			}
		}

		stats := cache.Stats()
		fmt.Fprintf(out, "\n%d fetched, %d failed", stats.Fetches, failed)
		var slowest time.Duration
		for _, d := range stats.LastFetch {
			slowest = max(slowest, d)
		}
		fmt.Fprintf(out, ", slowest %s\n", slowest.Round(time.Millisecond))

		if failed > 0 {
			return fmt.Errorf("%d of %d fragments failed", failed, len(reg.IDs()))
		}
		return nil
	},
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n    ")
}

func init() {
	fragmentsCheckCmd.Flags().Bool("preview", false, "Print each fragment as the TUI shows it")
	fragmentsCmd.AddCommand(fragmentsCheckCmd)
}
