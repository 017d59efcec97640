// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// Константы для логирования.
const (
	LogShutdownSignal  = "shutdown signal received"
	LogHookFailed      = "shutdown hook failed"
	LogShutdownTimeout = "shutdown timeout exceeded"
)

// Hook - функция, выполняемая при завершении работы.
type Hook func(context.Context) error

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM (или отмены ctx),
// затем выполняет все хуки в рамках заданного timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	logger.Log(ctx).Info(ctx, LogShutdownSignal)

	Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки и ждет их завершения не дольше timeout.
// Ошибки хуков логируются и не прерывают остальные хуки.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	hookCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var wgp sync.WaitGroup
	for i, hook := range hooks {
		wgp.Add(1)
		go func(idx int, fn Hook) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Error(hookCtx, LogHookFailed, zap.Int("hook", idx), zap.Error(err))
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, LogShutdownTimeout, zap.Duration("timeout", timeout))
	}
}
