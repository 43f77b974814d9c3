package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/esnupy/lafa/internal/messaging/kafka"
	"github.com/esnupy/lafa/internal/messaging/kafka/producer"
	"github.com/esnupy/lafa/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker runs the outbox relay until SIGINT/SIGTERM.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	brokerEnv := os.Getenv("KAFKA_BROKER")
	if brokerEnv == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	brokers := strings.Split(brokerEnv, ",")

	relay := producer.NewOutboxRelay(kafka.NewOutboxRepository(gormDB), brokers, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- relay.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("worker shutting down", zap.String("signal", sig.String()))
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}
