package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navmark/internal/nav"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Show which item a page load of path highlights",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		routes, err := cfg.RouteTable()
		if err != nil {
			return fmt.Errorf("building route table: %w", err)
		}

		h := nav.New(nav.NewCollection(cfg.NavItems()...), routes, nil,
			nav.WithLogger(newLogger(cfg)))
		active, ok := h.ActivateOnLoad(args[0])

		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintf(out, "%s: no item\n", args[0])
		}
		for _, it := range h.Snapshot() {
			fmt.Fprintf(out, "%-4s %-16s %-20s %s\n", it.ID, it.Label, it.Path, it.Classes())
		}
		if ok && verbose {
			fmt.Fprintf(out, "\nactive: %s\n", active.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
