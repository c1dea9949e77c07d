package pool

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/metrics"
	"github.com/pitchside/scoutd/internal/usecase"
)

// WorkerPool manages a fixed-size pool of goroutines that process tasks.
type WorkerPool struct {
	size      int
	tasks     <-chan *domain.TaskMessage
	scoutUC   *usecase.GenerateReportUsecase
	refreshUC *usecase.RefreshMarketUsecase
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewWorkerPool creates a new fixed-size worker pool.
func NewWorkerPool(
	size int,
	tasks <-chan *domain.TaskMessage,
	scoutUC *usecase.GenerateReportUsecase,
	refreshUC *usecase.RefreshMarketUsecase,
	logger *zap.Logger,
) *WorkerPool {
	return &WorkerPool{
		size:      size,
		tasks:     tasks,
		scoutUC:   scoutUC,
		refreshUC: refreshUC,
		logger:    logger,
	}
}

// Start launches all worker goroutines. Call Stop to wait for them to finish.
func (p *WorkerPool) Start(ctx context.Context) {
	p.logger.Info("Starting worker pool", zap.Int("pool_size", p.size))

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop waits for all workers to finish their current tasks and exit.
func (p *WorkerPool) Stop() {
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Worker panic recovered",
				zap.Int("worker_id", id),
				zap.Any("panic", r),
			)
		}
	}()

	p.logger.Debug("Worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Worker shutting down", zap.Int("worker_id", id))
			return
		case msg, ok := <-p.tasks:
			if !ok {
				p.logger.Debug("Task channel closed", zap.Int("worker_id", id))
				return
			}
			p.process(ctx, id, msg)
		}
	}
}

func (p *WorkerPool) process(ctx context.Context, id int, msg *domain.TaskMessage) {
	task := msg.Task

	p.logger.Info("Worker processing task",
		zap.Int("worker_id", id),
		zap.String("task_id", task.TaskID),
		zap.String("kind", string(task.Kind)),
	)

	metrics.WorkersActive.Inc()
	startTime := time.Now()

	var isDuplicate bool
	var err error
	switch task.Kind {
	case domain.KindScoutReport:
		isDuplicate, err = p.scoutUC.Execute(ctx, task)
	case domain.KindMarketRefresh:
		isDuplicate, err = p.refreshUC.Execute(ctx, task)
	default:
		p.logger.Error("Unknown task kind",
			zap.String("task_id", task.TaskID),
			zap.String("kind", string(task.Kind)),
		)
		// Unprocessable kinds go straight to the DLQ.
		if nackErr := msg.Nack(false); nackErr != nil {
			p.logger.Error("Failed to NACK message", zap.Error(nackErr))
		}
		metrics.WorkersActive.Dec()
		return
	}

	elapsed := time.Since(startTime).Seconds()
	metrics.WorkersActive.Dec()
	metrics.TaskDuration.WithLabelValues(string(task.Kind)).Observe(elapsed)

	if err != nil {
		p.logger.Error("Task processing failed",
			zap.Int("worker_id", id),
			zap.String("task_id", task.TaskID),
			zap.Error(err),
		)

		// Nack without requeue: failed tasks go to the DLQ. Each task
		// gets a single processing attempt.
		if nackErr := msg.Nack(false); nackErr != nil {
			p.logger.Error("Failed to NACK message",
				zap.String("task_id", task.TaskID),
				zap.Error(nackErr),
			)
		}
		metrics.TasksTotal.WithLabelValues(string(task.Kind), "error").Inc()
		return
	}

	if isDuplicate {
		p.logger.Debug("Duplicate task skipped",
			zap.Int("worker_id", id),
			zap.String("task_id", task.TaskID),
		)
		// ACK duplicates so the message leaves the queue.
		if ackErr := msg.Ack(); ackErr != nil {
			p.logger.Error("Failed to ACK duplicate message",
				zap.String("task_id", task.TaskID),
				zap.Error(ackErr),
			)
		}
		metrics.TasksTotal.WithLabelValues(string(task.Kind), "duplicate").Inc()
		return
	}

	if ackErr := msg.Ack(); ackErr != nil {
		p.logger.Error("Failed to ACK message after processing",
			zap.String("task_id", task.TaskID),
			zap.Error(ackErr),
		)
	}
	metrics.TasksTotal.WithLabelValues(string(task.Kind), "processed").Inc()
}
