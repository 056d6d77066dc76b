package textract

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/storage"

	"github.com/stretchr/testify/require"
)

func block(kind string, page int, text string, top float64) map[string]any {
	b := map[string]any{
		"BlockType":  kind,
		"Page":       page,
		"Confidence": 99.5,
	}

	if text != "" {
		b["Text"] = text
	}

	b["Geometry"] = map[string]any{
		"BoundingBox": map[string]any{
			"Top":    top,
			"Left":   0.1,
			"Width":  0.8,
			"Height": 0.02,
		},
	}

	return b
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_REGION", "eu-central-1")

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(WithURL(server.URL), WithPollInterval(time.Millisecond))
	require.NoError(t, err)

	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/x-amz-json-1.1")
	json.NewEncoder(w).Encode(v)
}

func TestExtractBytes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Textract.DetectDocumentText", r.Header.Get("X-Amz-Target"))

		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))

		document := body["Document"].(map[string]any)
		require.NotEmpty(t, document["Bytes"])

		writeJSON(w, map[string]any{
			"Blocks": []any{
				block("PAGE", 1, "", 0),
				block("LINE", 1, "Hello", 0.10),
				block("WORD", 1, "Hello", 0.10),
				block("LINE", 1, "World", 0.15),
			},
		})
	})

	doc, err := c.Extract(context.Background(), extractor.File{
		Name:        "scan.png",
		Content:     []byte("png"),
		ContentType: "image/png",
	}, nil)

	require.NoError(t, err)

	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Lines, 2)

	require.Equal(t, "Hello", doc.Lines[0].Text)
	require.InDelta(t, 0.10, doc.Lines[0].Top, 1e-6)
	require.InDelta(t, 0.995, doc.Lines[0].Score, 1e-6)
	require.Equal(t, "World", doc.Lines[1].Text)
}

func TestExtractAsync(t *testing.T) {
	polls := 0

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)

		switch r.Header.Get("X-Amz-Target") {
		case "Textract.StartDocumentTextDetection":
			location := body["DocumentLocation"].(map[string]any)["S3Object"].(map[string]any)

			require.Equal(t, "buffer", location["Bucket"])
			require.Equal(t, "abc", location["Name"])

			writeJSON(w, map[string]any{"JobId": "job-1"})

		case "Textract.GetDocumentTextDetection":
			polls++

			require.Equal(t, "job-1", body["JobId"])

			if polls == 1 {
				writeJSON(w, map[string]any{"JobStatus": "IN_PROGRESS"})
				return
			}

			if body["NextToken"] == nil {
				writeJSON(w, map[string]any{
					"JobStatus": "SUCCEEDED",
					"NextToken": "page-2",
					"Blocks": []any{
						block("LINE", 1, "First", 0.1),
					},
				})
				return
			}

			writeJSON(w, map[string]any{
				"JobStatus": "SUCCEEDED",
				"Blocks": []any{
					block("LINE", 2, "Second", 0.1),
				},
			})

		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	doc, err := c.Extract(context.Background(), extractor.File{
		Name:        "document.pdf",
		ContentType: "application/pdf",
	}, &extractor.ExtractOptions{
		Object: &storage.Object{Bucket: "buffer", Key: "abc"},
	})

	require.NoError(t, err)

	require.Equal(t, 3, polls)
	require.Equal(t, []int{1, 2}, doc.PageNumbers())
}

func TestExtractUnsupported(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request")
	})

	_, err := c.Extract(context.Background(), extractor.File{
		Name:        "notes.txt",
		ContentType: "text/plain",
	}, nil)

	require.ErrorIs(t, err, extractor.ErrUnsupported)
}
