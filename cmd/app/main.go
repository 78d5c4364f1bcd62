package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BuzzLyutic/astronaut-schedule/internal/config"
	"github.com/BuzzLyutic/astronaut-schedule/internal/handler"
	"github.com/BuzzLyutic/astronaut-schedule/internal/repo"
	"github.com/BuzzLyutic/astronaut-schedule/internal/service"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем логгер, пишет в stderr чтобы не мешать меню
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Одно расписание на весь процесс
	taskRepo := repo.NewTaskRepo()
	taskService := service.NewTaskService(taskRepo, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger, cfg.Output)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	done := make(chan error, 1)
	go func() { // Чтение stdin блокируется, поэтому цикл крутится отдельно
		done <- taskHandler.Run(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("Shell failed: ", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Interrupted, shutting down...")
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
