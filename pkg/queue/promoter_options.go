package queue

import (
	"log/slog"
	"time"
)

// PromoterOption is a functional option for configuring a Promoter
type PromoterOption func(*promoterOptions)

type promoterOptions struct {
	queues   []string
	interval time.Duration
	logger   *slog.Logger
}

// WithPromoterQueues sets which queues the promoter sweeps
func WithPromoterQueues(queues ...string) PromoterOption {
	return func(o *promoterOptions) {
		if len(queues) > 0 {
			o.queues = queues
		}
	}
}

// WithPromoteInterval sets how often the delayed set is swept
func WithPromoteInterval(d time.Duration) PromoterOption {
	return func(o *promoterOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithPromoterLogger sets the logger for the promoter
func WithPromoterLogger(logger *slog.Logger) PromoterOption {
	return func(o *promoterOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
