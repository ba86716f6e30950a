package statswkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/appconfig"
	"github.com/gmstracker/backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	DropRateService *service.DropRate
}

type Worker struct {
	// count counts batches the worker has completed so far
	count int

	// interval describes the interval in-between recompute batches
	interval time.Duration

	// timeout bounds a single recompute batch
	timeout time.Duration

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("worker: disabled")
		return
	}
	(&Worker{
		interval:   conf.WorkerInterval,
		timeout:    conf.WorkerTimeout,
		WorkerDeps: deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	parent, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			log.Info().
				Int("count", w.count).
				Msg("worker: batch started")

			ctx, cancelBatch := context.WithTimeout(parent, w.timeout)
			updated, err := w.DropRateService.RecomputeAll(ctx)
			cancelBatch()
			if err != nil {
				log.Error().
					Err(err).
					Int("count", w.count).
					Msg("worker: batch failed")
			} else {
				log.Info().
					Int("count", w.count).
					Int("pairsUpdated", updated).
					Msg("worker: batch finished")
			}

			w.count++

			select {
			case <-parent.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}()

	return cancel
}

func (w *Worker) Count() int {
	return w.count
}
