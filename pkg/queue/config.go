package queue

import "time"

// Config holds the environment-driven settings for queue processes.
type Config struct {
	QueueName             string        `env:"QUEUE_NAME" envDefault:"default"`
	PollInterval          time.Duration `env:"QUEUE_POLL_INTERVAL" envDefault:"1s"`
	MaxAttempts           int           `env:"QUEUE_MAX_ATTEMPTS" envDefault:"3"`
	PromoteInterval       time.Duration `env:"QUEUE_PROMOTE_INTERVAL" envDefault:"1s"`
	ScheduleCheckInterval time.Duration `env:"QUEUE_SCHEDULE_CHECK_INTERVAL" envDefault:"30s"`
}
