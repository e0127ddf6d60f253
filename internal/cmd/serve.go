package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/renato0307/roomsched/internal/logging"
	"github.com/renato0307/roomsched/internal/server"
)

// ServeCmd serves the HTTP API until interrupted
type ServeCmd struct {
	Addr string `help:"Listen address (overrides listen_addr in settings.json)" short:"a"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	addr := s.Addr
	if addr == "" {
		addr = cli.Container.Settings.ListenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Logger.Info("Starting HTTP API", "addr", addr)
	fmt.Fprintf(stdout, "Serving on %s (Ctrl+C to stop)\n", addr)
	return server.NewServer(cli.Container.ScheduleService, addr).Run(ctx)
}
