package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrWorkerPanic = errors.New("worker panic")

// Worker долгоживущая фоновая задача. Run возвращает nil при штатном
// завершении и ошибку, после которой задачу нужно перезапустить.
type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

// Supervisor запускает воркеры, перехватывает панику и перезапускает
// упавшие воркеры с экспоненциальной задержкой до maxDelay.
type Supervisor struct {
	log      *slog.Logger
	minDelay time.Duration
	maxDelay time.Duration
	workers  []Worker
	wg       sync.WaitGroup
}

func NewSupervisor(log *slog.Logger, minDelay, maxDelay time.Duration) *Supervisor {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Supervisor{log: log, minDelay: minDelay, maxDelay: maxDelay}
}

func (s *Supervisor) Add(workers ...Worker) *Supervisor {
	s.workers = append(s.workers, workers...)
	return s
}

// Run блокируется, пока все воркеры не завершатся или не отменится ctx
func (s *Supervisor) Run(ctx context.Context) {
	for _, worker := range s.workers {
		s.start(ctx, worker)
	}
	s.wg.Wait()
}

func (s *Supervisor) start(ctx context.Context, worker Worker) {
	s.wg.Add(1)
	name := worker.Name()

	go func() {
		defer s.wg.Done()

		failures := 0
		for {
			if ctx.Err() != nil {
				return
			}

			startedAt := time.Now()
			err := runSafely(ctx, worker)

			if err == nil {
				s.log.Info("worker finished", "name", name)
				return
			}

			if ctx.Err() != nil {
				s.log.Info("worker stopped (context canceled)", "name", name)
				return
			}

			// Воркер проработал дольше максимальной задержки: считаем его здоровым
			if time.Since(startedAt) > s.maxDelay {
				failures = 0
			}
			delay := s.backoff(failures)
			failures++

			s.log.Warn("worker crashed, restarting", "name", name, "error", err, "attempt", failures, "delay", delay)

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}()
}

func (s *Supervisor) backoff(failures int) time.Duration {
	delay := s.minDelay
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= s.maxDelay {
			return s.maxDelay
		}
	}
	return delay
}

func runSafely(ctx context.Context, worker Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}
