package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/benjamonnguyen/pomomo-timer/notify"
	"github.com/benjamonnguyen/pomomo-timer/web"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timer over a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.HTTPAddr
			}
			if c.cfg.LogLevel != log.DebugLevel {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			a, err := c.openApp()
			if err != nil {
				return err
			}
			defer a.Close() //nolint

			mgr := a.newSessionManager(ctx)
			dispatcher := notify.NewDispatcher(notify.LogNotifier{L: a.l}, notify.Silent{}, a.prefs, a.l.WithPrefix("notify"))
			mgr.OnSessionUpdate(onCompletion(dispatcher))

			srv := &http.Server{
				Addr:              addr,
				Handler:           web.NewServer(mgr, a.recorder, a.tasks, a.prefs, a.l.WithPrefix("web")).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errC := make(chan error, 1)
			go func() {
				a.l.Info("listening", "addr", addr)
				errC <- srv.ListenAndServe()
			}()

			select {
			case err := <-errC:
				if !errors.Is(err, http.ErrServerClosed) {
					_ = mgr.Shutdown()
					return err
				}
			case <-ctx.Done():
			}

			a.l.Info("shutting down")
			shutdownTimeout, shutdownTimeoutC := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownTimeoutC()
			if err := srv.Shutdown(shutdownTimeout); err != nil {
				a.l.Error("failed to shut down http server", "err", err)
			}
			return mgr.Shutdown()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $POMOMO_HTTP_ADDR)")
	return cmd
}
