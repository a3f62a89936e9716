// The producer binary enqueues jobs for the worker to process. It is meant
// for local runs and smoke tests; real applications call queue.Enqueuer
// directly from their own code.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/queuekit/pkg/config"
	"github.com/dmitrymomot/queuekit/pkg/jobs"
	"github.com/dmitrymomot/queuekit/pkg/logger"
	"github.com/dmitrymomot/queuekit/pkg/queue"
	redisconn "github.com/dmitrymomot/queuekit/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("producer failed", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	var (
		jobKind   = flag.String("job", "welcome", "job to enqueue: welcome or password-reset")
		to        = flag.String("to", "user@example.com", "recipient email address")
		name      = flag.String("name", "there", "recipient name (welcome job)")
		resetLink = flag.String("link", "https://example.com/reset", "reset link (password-reset job)")
		count     = flag.Int("count", 1, "number of jobs to enqueue")
	)
	flag.Parse()

	ctx := context.Background()

	var queueCfg queue.Config
	var redisCfg redisconn.Config
	config.MustLoad(&queueCfg)
	config.MustLoad(&redisCfg)

	log := logger.New(
		logger.WithDevelopment("queuekit-producer"),
		logger.WithAttr(logger.Component("producer")),
	)

	client, err := redisconn.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	store, err := queue.NewRedisQueue(client)
	if err != nil {
		return err
	}

	enqueuer, err := queue.NewEnqueuer(store,
		queue.WithDefaultQueue(queueCfg.QueueName),
		queue.WithDefaultMaxAttempts(queueCfg.MaxAttempts))
	if err != nil {
		return err
	}

	var payload any
	switch *jobKind {
	case "welcome":
		payload = jobs.WelcomeEmailPayload{Email: *to, Name: *name}
	case "password-reset":
		payload = jobs.PasswordResetPayload{Email: *to, ResetLink: *resetLink}
	default:
		return fmt.Errorf("unknown job kind %q", *jobKind)
	}

	for range *count {
		id, err := enqueuer.Enqueue(ctx, payload)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "job enqueued",
			logger.JobID(id),
			logger.Queue(queueCfg.QueueName))
	}

	return nil
}
