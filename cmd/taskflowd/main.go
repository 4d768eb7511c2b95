package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskflow/taskflow/adapter/api"
	"github.com/taskflow/taskflow/internal/app"
	"github.com/taskflow/taskflow/pkg/config"
	"github.com/taskflow/taskflow/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	logger := observability.NewLoggerFromEnv(cfg.AppEnv, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	serverCfg := api.DefaultServerConfig()
	serverCfg.Addr = cfg.ServerAddr

	server := api.NewServer(
		serverCfg,
		api.NewAuthHandler(container.AuthService, logger),
		api.NewTaskHandler(api.TaskHandlerConfig{
			CreateTask: container.CreateTaskHandler,
			UpdateTask: container.UpdateTaskHandler,
			ToggleTask: container.ToggleTaskHandler,
			DeleteTask: container.DeleteTaskHandler,
			ListTasks:  container.ListTasksHandler,
			GetTask:    container.GetTaskHandler,
			Logger:     logger,
		}),
		logger,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
