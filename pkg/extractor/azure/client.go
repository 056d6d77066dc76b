package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
)

var _ extractor.Provider = &Client{}

type Client struct {
	client *http.Client

	url   string
	token string

	interval time.Duration
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		interval: 5 * time.Second,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	model := "prebuilt-read"

	u, _ := url.Parse(strings.TrimRight(c.url, "/") + "/documentintelligence/documentModels/" + model + ":analyze")

	query := u.Query()
	query.Set("api-version", "2024-11-30")

	u.RawQuery = query.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(file.Content))
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, convertError(resp)
	}

	operationURL := resp.Header.Get("Operation-Location")

	if operationURL == "" {
		return nil, errors.New("missing operation location")
	}

	for {
		operation, err := c.poll(ctx, operationURL)

		if err != nil {
			return nil, err
		}

		if operation.Status == OperationStatusRunning || operation.Status == OperationStatusNotStarted {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.interval):
			}

			continue
		}

		if operation.Status != OperationStatusSucceeded {
			return nil, errors.New("operation " + string(operation.Status))
		}

		return convertResult(operation.Result), nil
	}
}

func (c *Client) poll(ctx context.Context, operationURL string) (*AnalyzeOperation, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var operation AnalyzeOperation

	if err := json.NewDecoder(resp.Body).Decode(&operation); err != nil {
		return nil, err
	}

	return &operation, nil
}

func convertResult(r AnalyzeResult) *extractor.Document {
	result := &extractor.Document{
		Pages: []extractor.Page{},
		Lines: []extractor.Line{},
	}

	for _, page := range r.Pages {
		result.Pages = append(result.Pages, extractor.Page{
			Page: page.PageNumber,

			Unit:   page.Unit,
			Width:  page.Width,
			Height: page.Height,
		})

		for _, line := range page.Lines {
			result.Lines = append(result.Lines, extractor.Line{
				Page: page.PageNumber,
				Text: line.Content,

				Top:   convertTop(line.Polygon, page.Height),
				Score: 1,
			})
		}
	}

	return result
}

// convertTop returns the smallest y coordinate of a flat [x1, y1, x2, y2, ...]
// polygon relative to the page height.
func convertTop(polygon []float64, height float64) float64 {
	if len(polygon) < 2 || height <= 0 {
		return 0
	}

	top := polygon[1]

	for i := 3; i < len(polygon); i += 2 {
		top = min(top, polygon[i])
	}

	return top / height
}

func isSupported(file extractor.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
