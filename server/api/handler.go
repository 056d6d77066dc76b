package api

import (
	"encoding/json"
	"net/http"

	"github.com/imharvol/cienciathon-2021/config"
	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/ingest"

	"github.com/go-chi/chi/v5"
)

type Queue interface {
	Enqueue(file extractor.File) (ingest.Job, error)

	Job(id string) (ingest.Job, bool)
	Jobs() []ingest.Job
}

type Handler struct {
	*config.Config

	queue Queue
}

func New(cfg *config.Config, queue Queue) (*Handler, error) {
	h := &Handler{
		Config: cfg,

		queue: queue,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Put("/files", h.handleUpload)
	r.Post("/files", h.handleUpload)

	r.Get("/files", h.handleFiles)
	r.Get("/files/{hash}", h.handleFile)

	r.Get("/jobs", h.handleJobs)
	r.Get("/jobs/{id}", h.handleJob)

	r.Post("/extract", h.handleExtract)
	r.Post("/segment", h.handleSegment)

	// routes of the first release
	r.Put("/uploadFile", h.handleUpload)
	r.Get("/getFiles", h.handleFiles)
	r.Get("/getFullFile", h.handleFile)
}

func writeJson(w http.ResponseWriter, v any) {
	writeJsonStatus(w, http.StatusOK, v)
}

func writeJsonStatus(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.WriteHeader(code)

	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Write([]byte(text))
}
