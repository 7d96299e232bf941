package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karinemajda/delivery-email-app/internal/bootstrap"
	"github.com/karinemajda/delivery-email-app/internal/config"
	"github.com/karinemajda/delivery-email-app/internal/core/domain"
	"github.com/karinemajda/delivery-email-app/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, "worker", cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", workerMetrics.Handler())
		if err := http.ListenAndServe(":"+cfg.WorkerMetricsPort, mux); err != nil && err != http.ErrServerClosed {
			log.Printf("worker metrics server error: %v", err)
		}
	}()

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeSubmissions(ctx, func(handlerCtx context.Context, submission domain.Submission) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		body := submission.Body
		if cfg.MaxEmailChars > 0 && len(body) > cfg.MaxEmailChars {
			body = body[:cfg.MaxEmailChars]
		}

		workerMetrics.StartSubmission()
		start := time.Now()
		result, err := app.AnalyzeUC.Analyze(processCtx, body)
		workerMetrics.FinishSubmission("worker", time.Since(start), err)

		if err != nil {
			app.Logger.Error("submission_analysis_failed",
				"submission_id", submission.ID,
				"subject", submission.Subject,
				"error", err,
			)
			return err
		}

		app.Logger.Info("submission_analyzed",
			"submission_id", submission.ID,
			"subject", submission.Subject,
			"record_id", result.Record.ID,
			"delivery", result.Record.Delivery,
			"defaulted", result.Defaulted,
		)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
