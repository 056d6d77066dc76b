package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/imharvol/cienciathon-2021/config"
	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/ingest"

	"github.com/stretchr/testify/require"
)

type emptyQueue struct{}

func (emptyQueue) Enqueue(file extractor.File) (ingest.Job, error) {
	return ingest.Job{}, ingest.ErrClosed
}

func (emptyQueue) Job(id string) (ingest.Job, bool) {
	return ingest.Job{}, false
}

func (emptyQueue) Jobs() []ingest.Job {
	return nil
}

func newTestServer(t *testing.T, content string) *httptest.Server {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Parse(path)
	require.NoError(t, err)

	s, err := New(cfg, emptyQueue{})
	require.NoError(t, err)

	server := httptest.NewServer(s)
	t.Cleanup(server.Close)

	return server
}

func TestAuth(t *testing.T) {
	server := newTestServer(t, `
database:
  type: memory
authorizers:
  - type: static
    token: secret
`)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/files")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/files", nil)
	req.Header.Set("Authorization", "Bearer secret")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWithoutAuth(t *testing.T) {
	server := newTestServer(t, "database:\n  type: memory\n")

	resp, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/jobs")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
