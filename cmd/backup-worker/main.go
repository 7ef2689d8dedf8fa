package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shubhamverma8991/credit-tracker/internal/amqp"
	"github.com/shubhamverma8991/credit-tracker/internal/config"
	applog "github.com/shubhamverma8991/credit-tracker/internal/log"
	"github.com/shubhamverma8991/credit-tracker/internal/sheets"
	gsheet "github.com/shubhamverma8991/credit-tracker/internal/sheets/google"
	memsheet "github.com/shubhamverma8991/credit-tracker/internal/sheets/memory"
	"github.com/shubhamverma8991/credit-tracker/internal/store/sqlite"
	"github.com/shubhamverma8991/credit-tracker/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting backup-worker", applog.FieldOperation, applog.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the backup worker")
		os.Exit(1)
	}

	st, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store",
			applog.FieldError, err,
			"path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer st.Close()

	var writer sheets.ExpenseWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		writer = memsheet.New()
		logger.Info("Google Sheets disabled, backing up to in-memory sheet")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	backupWorker := worker.NewBackupWorker(st, writer)

	// Users named up front get swept even before their first message
	// arrives in this process.
	for _, u := range strings.Split(os.Getenv("BACKUP_USERS"), ",") {
		backupWorker.TrackUser(strings.TrimSpace(u))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Performing startup sweep")
	if err := backupWorker.SweepAll(ctx); err != nil {
		logger.Error("Startup sweep failed", applog.FieldError, err)
		// Keep running; the periodic sweep retries.
	}

	go func() {
		handler := func(msg *amqp.RecordChangeMessage) error {
			return backupWorker.HandleChange(ctx, msg)
		}
		if err := amqpClient.ConsumeRecordChanges(ctx, handler); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", applog.FieldError, err)
			}
			cancel()
		}
	}()

	ticker := time.NewTicker(cfg.BackupSweepInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := backupWorker.SweepAll(ctx); err != nil {
					logger.Error("Periodic sweep failed", applog.FieldError, err)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received",
			"signal", sig.String(),
			applog.FieldOperation, applog.OpShutdown)
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker stopped")
}
