package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Promoter periodically sweeps the delayed sets of one or more queues
// and moves every entry whose due time has passed back to the tail of
// its pending queue. Workers run the same sweep before each pop by
// default; a standalone Promoter exists for deployments that prefer a
// single sweeper per store (disable the in-worker sweep with
// WithoutPromotion).
type Promoter struct {
	queue    Queue
	queues   []string
	interval time.Duration
	logger   *slog.Logger
}

// NewPromoter creates a delayed-job promoter over the given store.
func NewPromoter(q Queue, opts ...PromoterOption) (*Promoter, error) {
	if q == nil {
		return nil, ErrQueueNil
	}

	options := &promoterOptions{
		queues:   []string{DefaultQueueName},
		interval: time.Second,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(options)
	}

	return &Promoter{
		queue:    q,
		queues:   options.queues,
		interval: options.interval,
		logger:   options.logger,
	}, nil
}

// Start runs the sweep loop until ctx is cancelled or the store becomes
// unreachable. It blocks. Returns nil on cancellation and the store
// error otherwise.
func (p *Promoter) Start(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.InfoContext(ctx, "promoter started",
		slog.Any("queues", p.queues),
		slog.Duration("interval", p.interval))

	for {
		select {
		case <-ctx.Done():
			p.logger.InfoContext(ctx, "promoter stopped")
			return nil
		case <-ticker.C:
			if err := p.sweep(ctx); err != nil {
				p.logger.ErrorContext(ctx, "promoter stopping: job store unreachable",
					slog.String("error", err.Error()))
				return err
			}
		}
	}
}

// Run returns a function suitable for errgroup.Go.
func (p *Promoter) Run(ctx context.Context) func() error {
	return func() error {
		return p.Start(ctx)
	}
}

func (p *Promoter) sweep(ctx context.Context) error {
	now := time.Now()
	for _, queueName := range p.queues {
		n, err := p.queue.PromoteDue(ctx, queueName, now)
		if err != nil {
			return fmt.Errorf("failed to promote delayed jobs on queue %q: %w", queueName, err)
		}
		if n > 0 {
			p.logger.InfoContext(ctx, "promoted delayed jobs",
				slog.String("queue", queueName),
				slog.Int("count", n))
		}
	}
	return nil
}
