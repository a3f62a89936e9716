// The worker binary runs the queue consumer: a Worker polling for jobs, a
// Promoter moving due delayed jobs back into their queues, and a Scheduler
// enqueueing periodic jobs.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/queuekit/pkg/config"
	"github.com/dmitrymomot/queuekit/pkg/email"
	"github.com/dmitrymomot/queuekit/pkg/jobs"
	"github.com/dmitrymomot/queuekit/pkg/logger"
	"github.com/dmitrymomot/queuekit/pkg/queue"
	redisconn "github.com/dmitrymomot/queuekit/pkg/redis"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"queuekit-worker"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("worker terminated", logger.Error(err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var appCfg appConfig
	var queueCfg queue.Config
	var redisCfg redisconn.Config
	var emailCfg email.Config
	config.MustLoad(&appCfg)
	config.MustLoad(&queueCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&emailCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Environment, appCfg.ServiceName),
		logger.WithAttr(logger.Component("worker")),
	)
	logger.SetAsDefault(log)

	client, err := redisconn.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	store, err := queue.NewRedisQueue(client)
	if err != nil {
		return err
	}

	sender := newEmailSender(emailCfg, log)

	worker, err := queue.NewWorker(store,
		queue.WithQueues(queueCfg.QueueName),
		queue.WithPollInterval(queueCfg.PollInterval),
		// The standalone promoter owns delayed-job promotion.
		queue.WithoutPromotion(),
		queue.WithWorkerLogger(log))
	if err != nil {
		return err
	}
	if err := worker.RegisterHandlers(
		jobs.NewWelcomeEmailHandler(sender),
		jobs.NewPasswordResetHandler(sender),
		jobs.NewDeadLetterReportHandler(store, log),
	); err != nil {
		return err
	}

	promoter, err := queue.NewPromoter(store,
		queue.WithPromoterQueues(queueCfg.QueueName),
		queue.WithPromoteInterval(queueCfg.PromoteInterval),
		queue.WithPromoterLogger(log))
	if err != nil {
		return err
	}

	scheduler, err := queue.NewScheduler(store,
		queue.WithCheckInterval(queueCfg.ScheduleCheckInterval),
		queue.WithSchedulerLogger(log))
	if err != nil {
		return err
	}
	if err := scheduler.AddJob(jobs.DeadLetterReportJobName, queue.MustCron("0 * * * *"),
		queue.WithJobQueue(queueCfg.QueueName)); err != nil {
		return err
	}

	log.InfoContext(ctx, "worker starting",
		logger.Queue(queueCfg.QueueName),
		slog.Duration("poll_interval", queueCfg.PollInterval))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(worker.Run(gctx))
	g.Go(promoter.Run(gctx))
	g.Go(func() error {
		if err := scheduler.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("worker stopped")
	return nil
}

// newEmailSender picks Postmark when tokens are configured, the file-based
// dev sender otherwise.
func newEmailSender(cfg email.Config, log *slog.Logger) email.EmailSender {
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		return email.MustNewPostmarkClient(cfg)
	}
	log.Info("postmark tokens not set, writing emails to disk", slog.String("dir", cfg.DevEmailDir))
	return email.NewDevSender(cfg.DevEmailDir)
}
