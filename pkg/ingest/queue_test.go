package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	mu      sync.Mutex
	running int
	peak    int

	delay time.Duration
}

func (p *fakeProcessor) Process(ctx context.Context, file extractor.File) (*Result, error) {
	p.mu.Lock()
	p.running++
	p.peak = max(p.peak, p.running)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running--
		p.mu.Unlock()
	}()

	time.Sleep(p.delay)

	switch file.Name {
	case "fail.pdf":
		return nil, errors.New("ocr failed")

	case "dup.pdf":
		return nil, store.ErrExists
	}

	return &Result{
		File:       store.File{Hash: Hash(file.Content), Name: file.Name},
		Paragraphs: make([]store.Paragraph, 3),
	}, nil
}

func TestQueue(t *testing.T) {
	processor := &fakeProcessor{delay: 10 * time.Millisecond}

	q := NewQueue(processor, 10, WithWorkers(2))

	var jobs []Job

	for _, name := range []string{"a.pdf", "fail.pdf", "dup.pdf", "b.pdf", "c.pdf"} {
		job, err := q.Enqueue(extractor.File{Name: name, Content: []byte(name)})
		require.NoError(t, err)
		require.Equal(t, StatusQueued, job.Status)
		require.NotEmpty(t, job.ID)

		jobs = append(jobs, job)
	}

	q.Start(context.Background())
	require.NoError(t, q.Close())

	result := q.Jobs()
	require.Len(t, result, 5)

	for i, job := range result {
		require.Equal(t, jobs[i].ID, job.ID)
		require.False(t, job.Finished.IsZero())
	}

	completed, ok := q.Job(jobs[0].ID)
	require.True(t, ok)
	require.Equal(t, StatusCompleted, completed.Status)
	require.Equal(t, Hash([]byte("a.pdf")), completed.FileHash)
	require.Equal(t, 3, completed.Paragraphs)

	failed, _ := q.Job(jobs[1].ID)
	require.Equal(t, StatusFailed, failed.Status)
	require.Equal(t, "ocr failed", failed.Error)

	skipped, _ := q.Job(jobs[2].ID)
	require.Equal(t, StatusSkipped, skipped.Status)

	require.LessOrEqual(t, processor.peak, 2)

	_, err := q.Enqueue(extractor.File{Name: "late.pdf"})
	require.ErrorIs(t, err, ErrClosed)

	_, ok = q.Job("missing")
	require.False(t, ok)
}

func TestQueueFull(t *testing.T) {
	q := NewQueue(&fakeProcessor{}, 1)

	_, err := q.Enqueue(extractor.File{Name: "a.pdf"})
	require.NoError(t, err)

	_, err = q.Enqueue(extractor.File{Name: "b.pdf"})
	require.ErrorIs(t, err, ErrQueueFull)

	require.Len(t, q.Jobs(), 1)

	require.NoError(t, q.Close())
}

func TestQueueCloseWithoutStart(t *testing.T) {
	q := NewQueue(&fakeProcessor{}, 10)

	job, err := q.Enqueue(extractor.File{Name: "a.pdf"})
	require.NoError(t, err)

	require.NoError(t, q.Close())

	job, ok := q.Job(job.ID)
	require.True(t, ok)

	require.Equal(t, StatusFailed, job.Status)
	require.Equal(t, ErrClosed.Error(), job.Error)
	require.False(t, job.Finished.IsZero())
}
