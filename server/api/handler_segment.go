package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
)

func (h *Handler) handleSegment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadSize)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Tolerance != nil && *req.Tolerance < 0 {
		writeError(w, http.StatusBadRequest, errors.New("tolerance must not be negative"))
		return
	}

	lines := make([]segmenter.Line, 0, len(req.Lines))

	for _, l := range req.Lines {
		lines = append(lines, segmenter.Line{
			Text: l.Text,
			Top:  l.Top,
		})
	}

	options := &segmenter.SegmentOptions{
		Tolerance: req.Tolerance,
	}

	segments, err := h.Segmenter().Segment(r.Context(), lines, options)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result := make([]Segment, 0, len(segments))

	for _, s := range segments {
		result = append(result, Segment{
			Text:  s.Text,
			Lines: s.Lines,
		})
	}

	writeJson(w, result)
}
