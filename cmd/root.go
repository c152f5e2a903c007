package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navmark/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "navmark",
	Short: "Navigation highlighting server with persisted selections",
	Long: `navmark serves a small site whose navigation bar keeps exactly one item
highlighted. Page loads mark the item for the current path, clicks move the
highlight and are remembered per browser so the last selection survives
reloads.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
