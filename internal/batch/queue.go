package batch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jccirs09/picklist/internal/picklist"
	"github.com/jccirs09/picklist/internal/pipeline"
)

// Job is one file queued for processing.
type Job struct {
	Path        string
	SubmittedAt time.Time
}

// FileResult is the outcome for one queued file. Record is nil when the
// file failed or was a byte-identical duplicate of an earlier file.
type FileResult struct {
	Path         string
	HashHex      string
	Deduplicated bool
	Record       *picklist.PickingList
	Err          string
}

// Queue fans queued files out to a fixed pool of workers, each running the
// full pipeline with a per-file timeout.
type Queue struct {
	proc    *pipeline.Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	// mu guards closed and serializes sends against close(ch); workers
	// never take it, so a backpressure send cannot starve them.
	mu     sync.Mutex
	closed bool

	stMu    sync.Mutex
	seen    map[string]string
	results []FileResult
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewQueue(proc *pipeline.Processor, logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
		seen:    map[string]string{},
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)
				for job := range q.ch {
					q.handle(workerID, job)
				}
				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *Queue) handle(workerID int, job Job) {
	pdf, err := os.ReadFile(job.Path)
	if err != nil {
		q.logger.Error("read file failed", "worker_id", workerID, "path", job.Path, "error", err)
		q.record(FileResult{Path: job.Path, Err: err.Error()})
		return
	}

	sum := sha256.Sum256(pdf)
	hash := hex.EncodeToString(sum[:])

	q.stMu.Lock()
	prior, dup := q.seen[hash]
	if !dup {
		q.seen[hash] = job.Path
	}
	q.stMu.Unlock()
	if dup {
		q.logger.Info("duplicate file skipped", "worker_id", workerID, "path", job.Path, "first_seen", prior)
		q.record(FileResult{Path: job.Path, HashHex: hash, Deduplicated: true})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	pl, err := q.proc.Process(ctx, pdf)
	cancel()

	if err != nil {
		q.logger.Error("processing failed", "worker_id", workerID, "path", job.Path, "error", err)
		q.record(FileResult{Path: job.Path, HashHex: hash, Err: err.Error()})
		return
	}

	q.logger.Info("processed file",
		"worker_id", workerID,
		"path", job.Path,
		"order_number", pl.OrderNumber,
		"items", len(pl.Items),
	)
	q.record(FileResult{Path: job.Path, HashHex: hash, Record: pl})
}

func (q *Queue) record(r FileResult) {
	q.stMu.Lock()
	q.results = append(q.results, r)
	q.stMu.Unlock()
}

// Enqueue queues one file. Queueing after Shutdown is a no-op; a full
// channel applies backpressure instead of dropping the job. The lock is
// held across the send so Shutdown cannot close the channel mid-send.
func (q *Queue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "path", job.Path)
		return nil
	}

	select {
	case q.ch <- job:
	default:
		q.logger.Warn("queue full, applying backpressure", "path", job.Path)
		q.ch <- job
	}
	return nil
}

// Shutdown closes the queue and waits for in-flight work, bounded by ctx.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()
	select {
	case <-done:
	case <-ctx.Done():
		q.logger.Warn("shutdown timed out with workers still running")
	}
}

// Results returns the per-file outcomes recorded so far. Call after
// Shutdown for the complete set.
func (q *Queue) Results() []FileResult {
	q.stMu.Lock()
	defer q.stMu.Unlock()
	out := make([]FileResult, len(q.results))
	copy(out, q.results)
	return out
}
