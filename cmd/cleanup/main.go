// Command cleanup physically removes REJECTED match records older than the
// configured retention period, making those candidates eligible again. It is
// intended to be invoked by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success (including retention disabled), 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tagmatch-backend/internal/app"
	"github.com/heartmarshall/tagmatch-backend/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	retention := cfg.Matching.RejectedRetention()
	if retention == 0 {
		logger.Info("rejected retention disabled, nothing to do")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	engine, err := app.NewEngine(ctx, cfg, pool, logger)
	if err != nil {
		logger.Error("build engine", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer engine.Close()

	threshold := time.Now().Add(-retention)

	deleted, err := engine.Matching.PurgeRejected(ctx, threshold)
	if err != nil {
		logger.Error("purge rejected failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("purge rejected completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
