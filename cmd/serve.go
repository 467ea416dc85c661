package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weblearn/weblearn/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lesson pages and JSON API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc := e.services(ctx)
		srv := site.New(e.cfg.Server, site.Services{
			Bank:      svc.Bank,
			Tracker:   svc.Tracker,
			Assistant: svc.Assistant,
			Search:    svc.Search,
			Shelf:     svc.Shelf,
			Prefs:     svc.Prefs,
			Log:       e.log,
		})

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		e.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			e.log.Warn("shutdown", zap.Error(err))
			return err
		}
		return <-errCh
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
