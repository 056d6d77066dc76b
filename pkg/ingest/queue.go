package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrClosed    = errors.New("queue closed")
	ErrQueueFull = errors.New("queue full")
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

type Job struct {
	ID   string
	Name string

	Status Status
	Error  string

	FileHash   string
	Paragraphs int

	Created  time.Time
	Started  time.Time
	Finished time.Time
}

type item struct {
	id   string
	file extractor.File
}

// Queue processes files in the background with bounded parallelism.
type Queue struct {
	processor Processor

	workers int

	mu     sync.RWMutex
	closed bool

	jobs  map[string]*Job
	order []string

	items chan item
	done  chan struct{}

	started bool
}

type QueueOption func(*Queue)

func WithWorkers(workers int) QueueOption {
	return func(q *Queue) {
		q.workers = workers
	}
}

func NewQueue(processor Processor, size int, options ...QueueOption) *Queue {
	if size <= 0 {
		size = 100
	}

	q := &Queue{
		processor: processor,

		workers: 2,

		jobs:  make(map[string]*Job),
		items: make(chan item, size),
		done:  make(chan struct{}),
	}

	for _, option := range options {
		option(q)
	}

	if q.workers <= 0 {
		q.workers = 1
	}

	return q
}

// Start runs the workers until Close is called.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started {
		return
	}

	q.started = true

	go func() {
		defer close(q.done)

		g := new(errgroup.Group)
		g.SetLimit(q.workers)

		for i := range q.items {
			g.Go(func() error {
				q.run(ctx, i)
				return nil
			})
		}

		g.Wait()
	}()
}

// Enqueue registers a job for file and returns without waiting for it.
func (q *Queue) Enqueue(file extractor.File) (Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return Job{}, ErrClosed
	}

	job := &Job{
		ID:   uuid.NewString(),
		Name: file.Name,

		Status:  StatusQueued,
		Created: time.Now().UTC(),
	}

	select {
	case q.items <- item{id: job.ID, file: file}:
	default:
		return Job{}, ErrQueueFull
	}

	q.jobs[job.ID] = job
	q.order = append(q.order, job.ID)

	return *job, nil
}

func (q *Queue) run(ctx context.Context, i item) {
	q.update(i.id, func(j *Job) {
		j.Status = StatusRunning
		j.Started = time.Now().UTC()
	})

	result, err := q.processor.Process(ctx, i.file)

	q.update(i.id, func(j *Job) {
		j.Finished = time.Now().UTC()

		switch {
		case errors.Is(err, store.ErrExists):
			j.Status = StatusSkipped
			j.Error = err.Error()

		case err != nil:
			j.Status = StatusFailed
			j.Error = err.Error()

		default:
			j.Status = StatusCompleted
			j.FileHash = result.File.Hash
			j.Paragraphs = len(result.Paragraphs)
		}
	})

	if err != nil && !errors.Is(err, store.ErrExists) {
		slog.ErrorContext(ctx, "ingest job failed", "job", i.id, "name", i.file.Name, "error", err)
	}
}

func (q *Queue) update(id string, fn func(*Job)) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if job, ok := q.jobs[id]; ok {
		fn(job)
	}
}

func (q *Queue) Job(id string) (Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	job, ok := q.jobs[id]

	if !ok {
		return Job{}, false
	}

	return *job, true
}

// Jobs returns all jobs in the order they were enqueued.
func (q *Queue) Jobs() []Job {
	q.mu.RLock()
	defer q.mu.RUnlock()

	result := make([]Job, 0, len(q.order))

	for _, id := range q.order {
		result = append(result, *q.jobs[id])
	}

	return result
}

// Close stops accepting jobs and waits for queued jobs to finish. Jobs of a
// queue that was never started are marked failed.
func (q *Queue) Close() error {
	q.mu.Lock()

	if q.closed {
		q.mu.Unlock()
		return nil
	}

	q.closed = true
	close(q.items)

	started := q.started

	if !started {
		now := time.Now().UTC()

		for i := range q.items {
			if job, ok := q.jobs[i.id]; ok {
				job.Status = StatusFailed
				job.Error = ErrClosed.Error()
				job.Finished = now
			}
		}
	}

	q.mu.Unlock()

	if started {
		<-q.done
	}

	return nil
}
