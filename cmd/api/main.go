package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newsletter-automation/config"
	_ "newsletter-automation/docs" // Swagger docs
	"newsletter-automation/internal/app"
	"newsletter-automation/internal/httpserver"
	newsletterHTTP "newsletter-automation/internal/newsletter/delivery/http"
	"newsletter-automation/pkg/log"
)

// @title       Newsletter Event Automation API
// @description Extracts calendar events from Hebrew newsletter emails and creates them in Google Calendar.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
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

	logger.Info(ctx, "Starting Newsletter Automation...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Newsletter sender: %s", cfg.Gmail.SenderEmail)

	// 3. Newsletter domain
	var newsletterHandler newsletterHTTP.Handler

	if cfg.Gmail.CredentialsPath != "" && cfg.GoogleCalendar.CredentialsPath != "" {
		uc, ucErr := app.BuildUseCase(ctx, cfg, logger)
		if ucErr != nil {
			logger.Errorf(ctx, "Failed to initialize newsletter domain: %v", ucErr)
			return
		}
		newsletterHandler = newsletterHTTP.New(logger, uc)
		logger.Info(ctx, "Newsletter domain initialized")
	} else {
		logger.Warn(ctx, "Newsletter domain skipped: Gmail or Calendar credentials missing")
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:              cfg.HTTPServer.Port,
		Mode:              cfg.HTTPServer.Mode,
		Environment:       cfg.Environment.Name,
		NewsletterHandler: newsletterHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
