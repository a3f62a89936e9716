// Package jobs defines the job payloads shared by the producer and worker
// binaries, plus the handler constructors the worker registers for them.
// Handler names are derived from the payload type, so both sides must use
// the same types from this package.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/queuekit/pkg/email"
	"github.com/dmitrymomot/queuekit/pkg/logger"
	"github.com/dmitrymomot/queuekit/pkg/queue"
)

// WelcomeEmailPayload asks for a welcome email after signup.
type WelcomeEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PasswordResetPayload asks for a password reset email.
type PasswordResetPayload struct {
	Email     string `json:"email"`
	ResetLink string `json:"reset_link"`
}

// NewWelcomeEmailHandler sends a welcome email through the given sender.
func NewWelcomeEmailHandler(sender email.EmailSender) queue.Handler {
	return queue.NewTaskHandler(func(ctx context.Context, p WelcomeEmailPayload) error {
		return sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   p.Email,
			Subject:  fmt.Sprintf("Welcome, %s!", p.Name),
			BodyHTML: fmt.Sprintf("<h1>Welcome, %s!</h1><p>Thanks for signing up.</p>", p.Name),
			Tag:      "welcome",
		})
	})
}

// NewPasswordResetHandler sends a password reset email through the given sender.
func NewPasswordResetHandler(sender email.EmailSender) queue.Handler {
	return queue.NewTaskHandler(func(ctx context.Context, p PasswordResetPayload) error {
		return sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   p.Email,
			Subject:  "Reset your password",
			BodyHTML: fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password.</p>`, p.ResetLink),
			Tag:      "password-reset",
		})
	})
}

// DeadLetterReportJobName is the periodic job the scheduler enqueues to
// report on dead-lettered jobs.
const DeadLetterReportJobName = "deadletter_report"

// NewDeadLetterReportHandler logs a summary of the dead-letter store. It is
// registered under DeadLetterReportJobName and triggered by the scheduler.
func NewDeadLetterReportHandler(store queue.DeadLetterStore, log *slog.Logger) queue.Handler {
	return queue.NewPeriodicHandler(DeadLetterReportJobName, func(ctx context.Context) error {
		entries, err := store.DeadLetters(ctx)
		if err != nil {
			return fmt.Errorf("failed to list dead letters: %w", err)
		}
		if len(entries) == 0 {
			log.InfoContext(ctx, "no dead-lettered jobs")
			return nil
		}

		byQueue := make(map[string]int)
		for _, entry := range entries {
			byQueue[entry.Queue]++
		}
		for queueName, count := range byQueue {
			log.WarnContext(ctx, "dead-lettered jobs present",
				logger.Queue(queueName),
				slog.Int("count", count))
		}
		return nil
	})
}
