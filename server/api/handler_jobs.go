package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/ingest"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.queue.Jobs()

	result := make([]Job, 0, len(jobs))

	for _, j := range jobs {
		result = append(result, toJob(j))
	}

	writeJson(w, result)
}

func (h *Handler) handleJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	job, ok := h.queue.Job(id)

	if !ok {
		writeError(w, http.StatusNotFound, errors.New("job not found"))
		return
	}

	writeJson(w, toJob(job))
}

func toJob(j ingest.Job) Job {
	return Job{
		ID:   j.ID,
		Name: j.Name,

		Status: string(j.Status),
		Error:  j.Error,

		FileHash:   j.FileHash,
		Paragraphs: j.Paragraphs,

		Created:  timePtr(j.Created),
		Started:  timePtr(j.Started),
		Finished: timePtr(j.Finished),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
