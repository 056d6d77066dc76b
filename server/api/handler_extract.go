package api

import (
	"errors"
	"net/http"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
)

// handleExtract runs text recognition on a single file and returns the
// recognized lines without storing anything.
func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	files, err := readFiles(w, r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if len(files) != 1 {
		writeError(w, http.StatusBadRequest, errors.New("exactly one file expected"))
		return
	}

	p, err := h.Extractor(valueExtractor(r))

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	document, err := p.Extract(r.Context(), files[0], nil)

	if errors.Is(err, extractor.ErrUnsupported) {
		writeError(w, http.StatusUnsupportedMediaType, err)
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := Document{
		Lines: make([]Line, 0, len(document.Lines)),
	}

	for _, p := range document.Pages {
		result.Pages = append(result.Pages, Page{
			Page: p.Page,

			Unit:   p.Unit,
			Width:  p.Width,
			Height: p.Height,
		})
	}

	for _, l := range document.Lines {
		result.Lines = append(result.Lines, Line{
			Page: l.Page,

			Text: l.Text,
			Top:  l.Top,

			Score: l.Score,
		})
	}

	writeJson(w, result)
}
