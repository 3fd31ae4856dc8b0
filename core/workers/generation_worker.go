// ABOUTME: Background worker executing generation runs off a bounded job queue
// ABOUTME: Serializes scheduled and requested refreshes so they do not contend for the browser pool

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// JobType selects what a generation job covers.
type JobType int

const (
	// JobTypeRefresh runs the full fetch, generate and push workflow
	JobTypeRefresh JobType = iota

	// JobTypeCategory regenerates a single raw category
	JobTypeCategory
)

// String returns the job type name used in logs.
func (t JobType) String() string {
	if t == JobTypeCategory {
		return "category"
	}
	return "refresh"
}

// GenerationJob represents one queued generation request. Context is
// optional; a nil Context binds the job to the worker's lifetime so
// Stop cancels it. ResultCh and ErrorCh are optional delivery channels.
type GenerationJob struct {
	Type     JobType
	Category string
	Context  context.Context
	ResultCh chan<- *domain.RunSummary
	ErrorCh  chan<- error
}

// WorkerConfig holds configuration for the generation worker.
type WorkerConfig struct {
	// MaxWorkers is the number of concurrent job executors. Runs share
	// the browser pool, so this stays low.
	MaxWorkers int

	// QueueSize bounds how many jobs may wait
	QueueSize int

	// BaseContext is the parent of every job context. Values placed on
	// it, like the feature flag manager, reach all runs. Nil means
	// context.Background().
	BaseContext context.Context
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 1,
		QueueSize:  16,
	}
}

// submitTimeout bounds how long SubmitJob blocks on a full queue.
const submitTimeout = 5 * time.Second

// GenerationWorker manages background generation processing.
type GenerationWorker struct {
	deps       interfaces.Dependencies
	service    interfaces.GenerationService
	jobQueue   chan *GenerationJob
	maxWorkers int
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
}

// worker represents an individual worker goroutine
type worker struct {
	id       int
	jobQueue <-chan *GenerationJob
	service  interfaces.GenerationService
	logger   interfaces.Logger
	ctx      context.Context
	wg       *sync.WaitGroup
}

// NewGenerationWorker creates a worker around the given service.
func NewGenerationWorker(deps interfaces.Dependencies, service interfaces.GenerationService, config WorkerConfig) *GenerationWorker {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = DefaultWorkerConfig().MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultWorkerConfig().QueueSize
	}
	if config.BaseContext == nil {
		config.BaseContext = context.Background()
	}

	ctx, cancel := context.WithCancel(config.BaseContext)
	return &GenerationWorker{
		deps:       deps,
		service:    service,
		jobQueue:   make(chan *GenerationJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines.
func (gw *GenerationWorker) Start() error {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if gw.running {
		return nil
	}

	for i := 0; i < gw.maxWorkers; i++ {
		w := &worker{
			id:       i,
			jobQueue: gw.jobQueue,
			service:  gw.service,
			logger:   gw.deps.Logger,
			ctx:      gw.ctx,
			wg:       &gw.wg,
		}
		gw.wg.Add(1)
		go w.run()
	}

	gw.running = true
	return nil
}

// Stop cancels in-flight jobs and waits for the workers to exit. Jobs
// still queued when Stop is called are not processed.
func (gw *GenerationWorker) Stop() error {
	gw.mu.Lock()
	defer gw.mu.Unlock()

	if !gw.running {
		return nil
	}

	gw.cancel()
	gw.wg.Wait()

	gw.running = false
	return nil
}

// SubmitJob submits a job to the worker pool.
func (gw *GenerationWorker) SubmitJob(job *GenerationJob) error {
	gw.mu.Lock()
	if !gw.running {
		gw.mu.Unlock()
		return ErrWorkerNotRunning
	}
	gw.mu.Unlock()

	select {
	case gw.jobQueue <- job:
		return nil
	case <-time.After(submitTimeout):
		return ErrQueueFull
	}
}

// SubmitRefresh queues a full workflow run bound to the worker's
// lifetime.
func (gw *GenerationWorker) SubmitRefresh() error {
	return gw.SubmitJob(&GenerationJob{Type: JobTypeRefresh})
}

// SubmitCategory queues a regeneration of one raw category.
func (gw *GenerationWorker) SubmitCategory(category string) error {
	return gw.SubmitJob(&GenerationJob{Type: JobTypeCategory, Category: category})
}

// run is the main loop for each worker
func (w *worker) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case job := <-w.jobQueue:
			w.processJob(job)
		}
	}
}

// processJob executes a single generation job
func (w *worker) processJob(job *GenerationJob) {
	ctx := job.Context
	if ctx == nil {
		ctx = w.ctx
	}

	start := time.Now()

	var summary *domain.RunSummary
	var err error
	switch job.Type {
	case JobTypeCategory:
		summary, err = w.service.RefreshCategory(ctx, job.Category)
	default:
		summary, err = w.service.RefreshAll(ctx)
	}

	if err != nil {
		if w.logger != nil {
			w.logger.Error("Generation job failed", map[string]interface{}{
				"worker":   w.id,
				"type":     job.Type.String(),
				"category": job.Category,
				"error":    err.Error(),
			})
		}
		if job.ErrorCh != nil {
			select {
			case job.ErrorCh <- err:
			case <-ctx.Done():
			}
		}
		return
	}

	if w.logger != nil {
		w.logger.Info("Generation job complete", map[string]interface{}{
			"worker":     w.id,
			"type":       job.Type.String(),
			"category":   job.Category,
			"successful": summary.Successful,
			"degraded":   summary.Degraded,
			"duration":   time.Since(start).String(),
		})
	}
	if job.ResultCh != nil {
		select {
		case job.ResultCh <- summary:
		case <-ctx.Done():
		}
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
