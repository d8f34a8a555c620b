package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd(g *GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve subpanel schemas and field logic over HTTP",
		Long: `Start the HTTP server.

Endpoints:
  GET  /healthz
  GET  /v1/subpanels/{module}
  POST /v1/field-logic/{mode}
  POST /v1/reload

SIGHUP also drops cached metadata so edited files are reread.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runServe(c.Context(), g)
		},
	}

	c.Flags().String("addr", "", "Listen address (env: LEGACYUI_SERVER_ADDR)")

	return c
}

func runServe(ctx context.Context, g *GlobalConfig) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	defer a.Close()

	dispatcher, drain := newDispatcher()
	defer drain()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := server.Config{
		Addr:       g.Config.Server.Addr,
		Translator: a.translator,
		Modules:    a.metadata.Modules(),
		Logic:      dispatcher,
		Metadata:   a.metadata,
	}
	if a.fields != nil {
		cfg.Store = a.fields
	}

	go reloadOnHangup(ctx, a.metadata)

	return server.New(cfg).Serve(ctx)
}

// reloadOnHangup reloads r on every SIGHUP until ctx is done.
func reloadOnHangup(ctx context.Context, r server.Reloader) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			r.Reload()
			output.Info("metadata reloaded", "signal", "SIGHUP")
		}
	}
}
