// Package worker consumes digest requests and turns them into
// published report digests.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"finsight/internal/amqp"
	"finsight/internal/reports"
)

// digestWindowMonths is the trailing window the spending and cashflow
// sections cover. Anomaly and recurring sections pick their own
// windows.
const digestWindowMonths = 6

// DigestPublisher delivers computed digests. Satisfied by
// *amqp.Client.
type DigestPublisher interface {
	PublishDigestReady(ctx context.Context, msg *amqp.DigestReadyMessage) error
}

// DigestWorker computes report digests on request and publishes the
// result.
type DigestWorker struct {
	reports   *reports.Service
	publisher DigestPublisher
	now       func() time.Time
}

func NewDigestWorker(svc *reports.Service, publisher DigestPublisher) *DigestWorker {
	return &DigestWorker{
		reports:   svc,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithClock fixes the worker's notion of now. Tests use it to pin the
// digest window.
func (w *DigestWorker) WithClock(now func() time.Time) *DigestWorker {
	w.now = now
	return w
}

// HandleDigestRequest computes every digest section and publishes the
// ready event. Any section failing fails the whole request so the
// delivery gets requeued.
func (w *DigestWorker) HandleDigestRequest(ctx context.Context, msg *amqp.DigestRequestMessage) error {
	slog.InfoContext(ctx, "Processing digest request",
		"id", msg.ID,
		"user", msg.UserID)

	digest, err := w.buildDigest(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}

	ready := amqp.NewDigestReadyMessage(msg.ID, msg.UserID, digest)
	if err := w.publisher.PublishDigestReady(ctx, ready); err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	slog.InfoContext(ctx, "Digest published",
		"id", ready.ID,
		"request", msg.ID,
		"user", msg.UserID)

	return nil
}

// buildDigest runs the four digest sections concurrently. Each section
// builds its own report environment, so they share nothing but the
// store underneath.
func (w *DigestWorker) buildDigest(ctx context.Context, userID string) (*reports.ReportDigest, error) {
	end := w.now()
	start := end.AddDate(0, -digestWindowMonths, 0)

	var digest reports.ReportDigest
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report, err := w.reports.SpendingByCategory(ctx, userID, &start, end)
		if err != nil {
			return fmt.Errorf("spending section: %w", err)
		}
		digest.Spending = report
		return nil
	})

	g.Go(func() error {
		report, err := w.reports.IncomeVsExpenses(ctx, userID, &start, end)
		if err != nil {
			return fmt.Errorf("cashflow section: %w", err)
		}
		digest.Cashflow = report
		return nil
	})

	g.Go(func() error {
		report, err := w.reports.SpendingAnomalies(ctx, userID, reports.DefaultAnomalyThreshold)
		if err != nil {
			return fmt.Errorf("anomaly section: %w", err)
		}
		digest.Anomalies = report
		return nil
	})

	g.Go(func() error {
		report, err := w.reports.RecurringExpenses(ctx, userID, reports.DefaultMinOccurrences)
		if err != nil {
			return fmt.Errorf("recurring section: %w", err)
		}
		digest.Recurring = report
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &digest, nil
}
