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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation browser over HTTP",
	Long:  `Starts the documentation browser: the page at /, live sessions on /ws and a JSON API under /api.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		fetcher, err := newFetcher(cfg)
		if err != nil {
			return err
		}
		converter, highlighter := newRenderer(cfg)

		srv := server.New(server.Config{
			Port:        cfg.Port,
			TOCPath:     cfg.TOCPath,
			NarrowWidth: cfg.NarrowWidth,
			Title:       projectTitle(),
			AllowAll:    cfg.AllowAllOrigins,
		}, fetcher, converter, highlighter, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- srv.Start() }()

		fmt.Fprintf(os.Stderr, "docview %s serving %s at http://localhost:%d\n", Version, cfg.Source, cfg.Port)

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
