package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karinemajda/delivery-email-app/internal/config"
	"github.com/karinemajda/delivery-email-app/internal/core/ports"
	"github.com/karinemajda/delivery-email-app/internal/core/usecase"
	"github.com/karinemajda/delivery-email-app/internal/infrastructure/llm/ollama"
	"github.com/karinemajda/delivery-email-app/internal/infrastructure/queue/nats"
	"github.com/karinemajda/delivery-email-app/internal/infrastructure/repository/postgres"
	"github.com/karinemajda/delivery-email-app/internal/infrastructure/resilience"
	"github.com/karinemajda/delivery-email-app/internal/observability/logging"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue     ports.MessageQueue
	Store     ports.DeliveryStore
	AnalyzeUC *usecase.AnalyzeEmailUseCase
	HistoryUC *usecase.DeliveryHistoryUseCase

	closeFn func()
}

func New(ctx context.Context, service string, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger(service, cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	store := postgres.NewDeliveryRepository(db, time.Duration(cfg.StoreTimeoutSecs)*time.Second)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	executorCfg := resilience.DefaultConfig()
	executorCfg.CallTimeout = time.Duration(cfg.CompletionTimeoutSecs) * time.Second
	executorCfg.BreakerEnabled = cfg.BreakerEnabled
	completer := ollama.New(cfg.OllamaURL, cfg.OllamaModel, resilience.NewExecutor(executorCfg))

	analyzeUC := usecase.NewAnalyzeEmailUseCase(completer, store, cfg.CompletionMaxTokens)
	historyUC := usecase.NewDeliveryHistoryUseCase(store, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:     queue,
		Store:     store,
		AnalyzeUC: analyzeUC,
		HistoryUC: historyUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
