package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/imharvol/cienciathon-2021/config"
	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}).ParseFS(templateFS, "templates/*.html"))

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	return &Handler{
		Config: cfg,
	}, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/files/{hash}", h.handleFile)
}

type fileView struct {
	Hash string
	Name string

	Uploaded time.Time

	Keywords   []store.Keyword
	Paragraphs []paragraphView
}

type paragraphView struct {
	Position int

	Content  template.HTML
	Keywords []store.Keyword
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := h.Store().ListFiles(ctx)

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var views []fileView

	for _, f := range files {
		keywords, err := h.Store().FileKeywords(ctx, f.Hash)

		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		views = append(views, fileView{
			Hash: f.Hash,
			Name: f.Name,

			Uploaded: f.Uploaded,

			Keywords: store.FilterKeywords(keywords, h.Views.ListScore),
		})
	}

	render(w, "index.html", views)
}

func (h *Handler) handleFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := h.Store().GetFile(ctx, chi.URLParam(r, "hash"))

	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	paragraphs, err := h.Store().ListParagraphs(ctx, f.Hash)

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view := fileView{
		Hash: f.Hash,
		Name: f.Name,

		Uploaded: f.Uploaded,
	}

	for _, p := range paragraphs {
		keywords, err := h.Store().ParagraphKeywords(ctx, p.Hash)

		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		keywords = store.FilterKeywords(keywords, h.Views.DetailScore)

		content, err := renderParagraph(p.Contents, keywords)

		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		view.Paragraphs = append(view.Paragraphs, paragraphView{
			Position: p.Position,

			Content:  content,
			Keywords: keywords,
		})
	}

	render(w, "file.html", view)
}

func render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
