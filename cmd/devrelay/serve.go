package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/devrelay/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over HTTP on a loopback address",
		Long: `Serves the action set over MCP streamable HTTP. The endpoint URL is printed
on stdout once the listener is bound; with port 0 a free port is picked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			srv := server.New(a.cfg, d, a.logger, Version)

			ln, err := srv.Listen()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), srv.URL(ln))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ServeHTTP(gctx, ln)
			})
			g.Go(func() error {
				<-gctx.Done()
				a.logger.Info("shutting down", zap.Error(context.Cause(gctx)))
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config and "+PortEnv+")")
	return cmd
}
