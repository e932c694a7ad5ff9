package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/spacemonkeygo/monkit/v3/environment"
	"github.com/spacemonkeygo/monkit/v3/present"
)

// serveMetrics exposes the default monkit registry over HTTP until ctx ends.
func serveMetrics(ctx context.Context, addr string, logger *log.Logger) {
	environment.Register(monkit.Default)

	srv := &http.Server{Addr: addr, Handler: present.HTTP(monkit.Default)}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
}
