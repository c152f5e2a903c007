package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/navmark/internal/mcp"
	"github.com/ziadkadry99/navmark/internal/selection"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the navigation table and stored selections as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		routes, err := cfg.RouteTable()
		if err != nil {
			return fmt.Errorf("building route table: %w", err)
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		mcpserver.Version = Version

		log.WithField("database", database.Path()).Info("navmark MCP server started on stdio")

		srv := mcpserver.NewServer(cfg.NavItems(), routes, selection.NewStore(database, selection.WithRetention(cfg.HistoryRetention)), cfg.StorageKey)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
