package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	transport "trivia-quiz/internal/transport/http"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	envPort := os.Getenv("PORT")
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rounds over websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", envPort, "port to listen on (defaults to server.port)")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, portFlag string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := setup(ctx, opts)
	if err != nil {
		return err
	}
	defer d.Close()

	port := portFlag
	if port == "" {
		port = d.cfg.Server.Port
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           transport.NewRouter(d.service, d.log),
		ReadHeaderTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.log.Info().Str("addr", server.Addr).Msg("starting trivia server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		d.log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		d.log.Error().Err(err).Msg("server stopped")
		return err
	}
	return nil
}
