package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"anser/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Config path comes from CONFIG_PATH, defaulting to config/config.yaml.
	app := NewApplication()
	if err := app.Initialize(); err != nil {
		logger.FatalCtx(nil, "controller initialization failed: %v", err)
	}

	if err := app.Start(); err != nil {
		logger.FatalCtx(app.ctx, "controller startup failed: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.InfoCtx(app.ctx, "received %v, shutting down", sig)

	if err := app.Shutdown(shutdownTimeout); err != nil {
		logger.ErrorCtx(app.ctx, "controller shutdown failed: %v", err)
		os.Exit(1)
	}

	logger.InfoCtx(app.ctx, "controller exited cleanly")
}
