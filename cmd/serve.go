package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/barboracab/hangthedj/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until interrupted.
//
// The surface mirrors what a browser client needs: catalog search, queue reads
// and writes, and a server-sent event stream per room. Every endpoint is CORS
// open and unauthenticated.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := cmd.String("host")
	port := cmd.Int("port")

	if host == "" {
		host = r.config.Server.Host
	}
	if port == 0 {
		port = r.config.Server.Port
	}

	songStore, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	router := server.NewBasicRouter()
	router.Use(server.CORS(), server.RequestLogger(r.logger))
	if r.catalog != nil {
		router.Handler(server.NewSearchHandler(r.catalog, r.logger))
	} else {
		r.logger.Warn("catalog credentials missing, /search disabled")
	}
	router.Handler(server.NewRoomsHandler(songStore, r.logger))
	router.Handler(server.NewEventsHandler(songStore.Notifier(), r.logger))

	serverAddr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	return nil
}
