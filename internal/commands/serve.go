package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/canonpl-dev/canonpl/internal/server"
)

func newServeCommand() *cobra.Command {
	var cfgPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the canonical P&L and comparison report over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local overrides; absence is fine.
			_ = godotenv.Load()

			cfg, canon, gen, err := loadPipeline(cfgPath)
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}
			if env := os.Getenv("CANONPL_ADDR"); env != "" {
				addr = env
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(canon, gen, logger).Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "canonpl.yaml", "path to canonpl.yaml")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
