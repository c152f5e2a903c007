package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navmark/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize navmark configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure navmark and writes the config file named by --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
