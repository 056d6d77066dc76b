package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/ingest"
	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	files, err := readFiles(w, r)

	if err != nil {
		writeJsonStatus(w, http.StatusBadRequest, Status{Err: true, Msg: err.Error()})
		return
	}

	for _, f := range files {
		if !isSupported(f.ContentType) {
			writeJsonStatus(w, http.StatusBadRequest, Status{Err: true, Msg: "Unsupported file mimetype: " + f.ContentType})
			return
		}
	}

	var jobs []Job

	for _, f := range files {
		job, err := h.queue.Enqueue(f)

		if err != nil {
			code := http.StatusInternalServerError

			if errors.Is(err, ingest.ErrQueueFull) || errors.Is(err, ingest.ErrClosed) {
				code = http.StatusServiceUnavailable
			}

			writeJsonStatus(w, code, Status{Err: true, Msg: err.Error(), Jobs: jobs})
			return
		}

		jobs = append(jobs, Job{
			ID:   job.ID,
			Name: job.Name,
		})
	}

	plural := len(files) > 1

	msg := "Your file is being processed, it should be available shortly"

	if plural {
		msg = "Your files are being processed, they should be available shortly"
	}

	writeJson(w, Status{OK: true, Msg: msg, Jobs: jobs})
}

func (h *Handler) handleFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := h.Store().ListFiles(ctx)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := make([]File, 0, len(files))

	for _, f := range files {
		keywords, err := h.Store().FileKeywords(ctx, f.Hash)

		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		result = append(result, File{
			Hash: f.Hash,
			Name: f.Name,

			Uploaded: f.Uploaded,

			Keywords: toKeywords(store.FilterKeywords(keywords, h.Views.ListScore)),
		})
	}

	writeJson(w, result)
}

func (h *Handler) handleFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	hash := chi.URLParam(r, "hash")

	if hash == "" {
		hash = r.URL.Query().Get("hash")
	}

	hash = strings.TrimSpace(hash)

	if hash == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing file hash"))
		return
	}

	f, err := h.Store().GetFile(ctx, hash)

	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Errorf("file %s not found", hash))
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	keywords, err := h.Store().FileKeywords(ctx, f.Hash)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	paragraphs, err := h.Store().ListParagraphs(ctx, f.Hash)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := File{
		Hash: f.Hash,
		Name: f.Name,

		Uploaded: f.Uploaded,

		Keywords: toKeywords(store.FilterKeywords(keywords, h.Views.DetailScore)),

		Paragraphs: make([]Paragraph, 0, len(paragraphs)),
	}

	for _, p := range paragraphs {
		keywords, err := h.Store().ParagraphKeywords(ctx, p.Hash)

		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		result.Paragraphs = append(result.Paragraphs, Paragraph{
			Hash:     p.Hash,
			Contents: p.Contents,
			Position: p.Position,

			Keywords: toKeywords(store.FilterKeywords(keywords, h.Views.DetailScore)),
		})
	}

	writeJson(w, result)
}

func toKeywords(keywords []store.Keyword) []Keyword {
	result := make([]Keyword, 0, len(keywords))

	for _, k := range keywords {
		result = append(result, Keyword{
			Text:  k.Text,
			Score: k.Score,
		})
	}

	return result
}
