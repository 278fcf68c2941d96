package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xaionaro-go/ffav/logger"
	"github.com/xaionaro-go/xcontext"
)

const metricsShutdownTimeout = 5 * time.Second

// serveMetrics exposes reg on /metrics until ctx is cancelled.
func serveMetrics(
	ctx context.Context,
	ln net.Listener,
	reg *prometheus.Registry,
) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Debugf(ctx, "serving metrics at http://%s/metrics", ln.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelFn := context.WithTimeout(xcontext.DetachDone(ctx), metricsShutdownTimeout)
	defer cancelFn()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
