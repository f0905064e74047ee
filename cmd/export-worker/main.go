package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spendtrack/internal/amqp"
	"spendtrack/internal/config"
	applog "spendtrack/internal/log"
	"spendtrack/internal/sheets"
	"spendtrack/internal/storage"
	"spendtrack/internal/worker"
)

// The export worker mirrors newly created expenses into a Google Sheet. It
// consumes the same queue the web app publishes to, so it can run on another
// host as long as both see the database and the broker.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     applog.DefaultConfig().Level,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}
	if !cfg.ExportEnabled() {
		logger.Error("export worker requires AMQP_URL and GOOGLE_SPREADSHEET_ID")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to open database", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appender, err := sheets.NewGoogleClient(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
	if err != nil {
		logger.Error("failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to connect to AMQP broker", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	w := worker.NewExportWorker(repo, appender)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("export worker started",
			"queue", cfg.AMQPQueue, "spreadsheet", cfg.GoogleSpreadsheetID,
			applog.FieldOperation, applog.OpStartup)

		// Broker hiccups should not kill the worker; retry after a pause.
		for {
			err := client.ConsumeExpenseEvents(ctx, func(ev *amqp.ExpenseEvent) error {
				return w.HandleEvent(ctx, ev)
			})
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("consume loop ended, retrying", applog.FieldError, err,
				"retry_in", cfg.ExportInterval)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.ExportInterval):
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("export worker error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("export worker stopped", applog.FieldOperation, applog.OpShutdown)
}
