package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/syntax-framework/basset/internal/style"
	"github.com/syntax-framework/basset/server"
)

func newServeCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the raw assets and the metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, stdout, stderr)
		},
	}
	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().Bool("watch", false, "Reload connected browsers when assets change")
	cmd.Flags().Duration("watch-interval", 500*time.Millisecond, "How often assets are checked for changes")
	return cmd
}

func runServe(cmd *cobra.Command, stdout, stderr io.Writer) error {
	b, logger, err := loadBasset(cmd, stderr)
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	watch, _ := cmd.Flags().GetBool("watch")
	interval, _ := cmd.Flags().GetDuration("watch-interval")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithErrorHandler(func(_ context.Context, err error) {
			reportError(err)
		}),
	}
	if watch {
		reloader := server.NewReloader(logger)
		defer reloader.Close()
		go reloader.Watch(ctx, b, interval)
		opts = append(opts, server.WithReloader(reloader))
		fmt.Fprintf(stdout, "Live reload at %s\n", style.Info.Render(b.HandlesPath(server.ReloadPath)))
	}

	fmt.Fprintf(stdout, "Serving %s on %s\n", style.Info.Render(b.HandlesPath("")), style.Bold.Render(addr))
	return server.Serve(ctx, addr, server.New(b, opts...), logger)
}
