// Package backend builds the configured Store and wires the optional
// change feed around it.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shubhamverma8991/credit-tracker/internal/amqp"
	"github.com/shubhamverma8991/credit-tracker/internal/store/feed"
	"github.com/shubhamverma8991/credit-tracker/internal/store/memory"
	"github.com/shubhamverma8991/credit-tracker/internal/store/sqlite"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	sqliteStore, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
	}

	// The change feed is optional; without a broker writes stay local.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without change feed", "error", err)
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	result := &Result{Store: sqliteStore, Cleanup: sqliteStore.Close}
	if amqpClient != nil {
		result.Store = feed.New(sqliteStore, amqpClient)
		result.Cleanup = func() error {
			amqpClient.Close()
			return sqliteStore.Close()
		}
	}

	f.logger.Info("Initialized sqlite backend",
		"db_path", config.SQLiteDBPath,
		"change_feed", amqpClient != nil)
	return result, nil
}

func (f *DefaultFactory) createMemoryBackend(Config) (*Result, error) {
	f.logger.Info("Initialized memory backend")
	return &Result{Store: memory.New()}, nil
}
