// Command process runs one inbox extraction pass and prints the run
// statistics as JSON. Intended for cron and CI schedules.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newsletter-automation/config"
	"newsletter-automation/internal/app"
	"newsletter-automation/pkg/log"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Newsletter usecase
	uc, err := app.BuildUseCase(ctx, cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}

	// 4. Single run
	stats, err := uc.ProcessInbox(ctx)
	if err != nil {
		logger.Errorf(ctx, "Inbox run failed: %v", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		logger.Errorf(ctx, "Failed to encode stats: %v", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if stats.EventsFailed > 0 {
		os.Exit(2)
	}
}
