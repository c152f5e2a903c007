package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navmark/internal/logging"
	"github.com/ziadkadry99/navmark/internal/selection"
	"github.com/ziadkadry99/navmark/internal/server"
	"github.com/ziadkadry99/navmark/internal/site"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the navmark web server",
	Long:  `Serves the site pages, the /api/nav endpoints and the tab-sync websocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
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

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		}, database, logging.Component(log, "server"))

		st, err := site.New(site.Options{
			Title:      cfg.SiteTitle,
			CookieName: cfg.CookieName,
			StorageKey: cfg.StorageKey,
			Items:      cfg.NavItems(),
			Routes:     routes,
			Store:      selection.NewStore(database, selection.WithRetention(cfg.HistoryRetention)),
			Log:        log,
		})
		if err != nil {
			return fmt.Errorf("building site: %w", err)
		}
		st.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Warn("shutdown")
			}
		}()

		log.WithFields(logrus.Fields{
			"version":  Version,
			"port":     cfg.Port,
			"database": database.Path(),
			"items":    len(cfg.Items),
		}).Info("navmark server starting")

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
