// The worker drains the transactional outbox into kafka. It shares the
// api's database but runs as its own process so slow brokers never
// block request handling.
package main

import (
	"os"

	"github.com/esnupy/lafa/internal/app"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunWorker(); err != nil {
		logger.Fatal("outbox relay stopped", zap.Error(err))
	}
}
