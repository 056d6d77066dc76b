//go:build !tesseract

package tesseract

import (
	"context"
	"errors"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
)

var _ extractor.Provider = &Client{}

type Client struct {
	languages []string
}

func New(options ...Option) (*Client, error) {
	return nil, errors.New("tesseract support not compiled in (build with -tags tesseract)")
}

func (c *Client) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	return nil, extractor.ErrUnsupported
}
