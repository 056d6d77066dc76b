//go:build tesseract

package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"

	"github.com/otiai10/gosseract/v2"
)

var _ extractor.Provider = &Client{}

// Client runs Tesseract locally. It needs libtesseract at build and run time.
type Client struct {
	languages []string
}

func New(options ...Option) (*Client, error) {
	c := &Client{}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	height, err := imageHeight(file.Content)

	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(file.Content); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	if len(c.languages) > 0 {
		if err := client.SetLanguage(c.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)

	if err != nil {
		return nil, fmt.Errorf("recognize lines: %w", err)
	}

	result := &extractor.Document{
		Pages: []extractor.Page{
			{
				Page: 1,

				Unit:   "pixel",
				Height: float64(height),
			},
		},

		Lines: []extractor.Line{},
	}

	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)

		if text == "" {
			continue
		}

		result.Lines = append(result.Lines, extractor.Line{
			Page: 1,
			Text: text,

			Top:   float64(b.Box.Min.Y) / float64(height),
			Score: b.Confidence / 100,
		})
	}

	return result, nil
}
