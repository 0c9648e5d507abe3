package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beesaferoot/gorm-bookings/internal/httpapi"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")

			a, err := newApp(debug)
			if err != nil {
				return err
			}
			defer a.log.Sync()

			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			e := httpapi.NewServer(httpapi.NewHandler(a.resources, a.bookings, a.tickets, a.log))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("listening", zap.String("addr", addr))
				errCh <- e.Start(addr)
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
			a.log.Info("shutting down")
			return e.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to HTTP_ADDR)")
	cmd.Flags().Bool("debug", false, "Enable SQL debug output")

	return cmd
}
