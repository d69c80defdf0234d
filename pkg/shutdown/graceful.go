package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/job-discovery/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain function to Stoppable
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// Graceful blocks until one of signals arrives or parent is done, then stops
// every Stoppable in order within a shared timeout
func Graceful(parent context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, stoppables ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(parent, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := 0
	for _, s := range stoppables {
		if err := s.Shutdown(ctx); err != nil {
			failed++
			log.Warn("graceful shutdown step failed", "err", err)
		}
	}

	if failed > 0 {
		log.Warn("graceful shutdown completed with errors", "failed", failed)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}
