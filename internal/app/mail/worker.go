package mail

import (
	"context"
	"errors"
	"time"

	domain "github.com/Miraines/MoonyAndStarry/account-service/internal/domain/mail"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultPollWait = time.Second

// Worker drains a queue with a fixed number of consumers.
type Worker struct {
	queue      domain.Consumer
	dispatcher *Dispatcher
	consumers  int
	wait       time.Duration
	log        *zap.Logger
}

func NewWorker(q domain.Consumer, d *Dispatcher, consumers int, log *zap.Logger) *Worker {
	if consumers < 1 {
		consumers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Worker{queue: q, dispatcher: d, consumers: consumers, wait: defaultPollWait, log: log}
}

// Run blocks until ctx is cancelled. A failed job is logged and dropped.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.consumers; i++ {
		id := i
		g.Go(func() error {
			w.consume(ctx, id)
			return nil
		})
	}
	return g.Wait()
}

func (w *Worker) consume(ctx context.Context, id int) {
	log := w.log.With(zap.Int("consumer", id))
	log.Debug("consumer started")

	for ctx.Err() == nil {
		job, err := w.queue.Dequeue(ctx, w.wait)
		switch {
		case errors.Is(err, domain.ErrQueueEmpty):
			continue
		case ctx.Err() != nil:
			return
		case err != nil:
			log.Error("dequeue", zap.Error(err))
			w.backoff(ctx)
			continue
		}

		if err := w.dispatcher.Dispatch(ctx, job); err != nil {
			log.Error("mail job failed", zap.String("kind", string(job.Kind)), zap.Error(err))
		}
	}
	log.Debug("consumer stopped")
}

func (w *Worker) backoff(ctx context.Context) {
	t := time.NewTimer(w.wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
