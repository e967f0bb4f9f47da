// Package shutdown останавливает сервис по SIGINT/SIGTERM: после сигнала
// хуки завершения выполняются параллельно в пределах общего таймаута.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Wait блокируется до первого SIGINT или SIGTERM, затем запускает хуки
// и возвращает управление, когда все они завершились или истек timeout.
// Ошибки хуков не останавливают остальные: каждый хук отвечает за
// собственное логирование.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	signal.Stop(sig)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, hook := range hooks {
		wg.Add(1)
		go func(fn func(context.Context) error) {
			defer wg.Done()
			_ = fn(ctx)
		}(hook)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
