package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/attacq/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "attacq",
	Short: "AI Trust Tier Quiz",
	Long:  "attacq asks how you treat AI systems, files you under a trust tier, and hands out badges for consistency.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides ATTACQ_DB env var)")
	pf.String("config", "", "Path to a YAML config file")
	pf.Bool("rogue", false, "Start straight into rogue mode")
	pf.Bool("debug", false, "Write diagnostic logs beside the database")
	pf.Bool("dev", false, "Alias for --debug")
	pf.Bool("verbose", false, "Log at debug level (implies --debug)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(fragmentsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then ATTACQ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
