package extractor

import (
	"context"
	"errors"
	"slices"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
	"github.com/imharvol/cienciathon-2021/pkg/storage"
)

type Provider interface {
	Extract(ctx context.Context, file File, options *ExtractOptions) (*Document, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

type File struct {
	Name string

	Content     []byte
	ContentType string
}

type ExtractOptions struct {
	// buffered copy of the file, if it was uploaded to object storage
	Object *storage.Object
}

type Document struct {
	Pages []Page
	Lines []Line
}

type Page struct {
	Page int

	Unit   string
	Width  float64
	Height float64
}

// Line is a recognized text line. Top is normalized to the page height.
type Line struct {
	Page int
	Text string

	Top   float64
	Score float64
}

// PageNumbers returns the distinct page numbers that carry lines, in order of appearance.
func (d *Document) PageNumbers() []int {
	var result []int

	for _, l := range d.Lines {
		if !slices.Contains(result, l.Page) {
			result = append(result, l.Page)
		}
	}

	return result
}

// PageLines returns the lines of a page in reading order.
func (d *Document) PageLines(page int) []segmenter.Line {
	var result []segmenter.Line

	for _, l := range d.Lines {
		if l.Page != page {
			continue
		}

		result = append(result, segmenter.Line{
			Text: l.Text,
			Top:  l.Top,
		})
	}

	return result
}

// https://docs.aws.amazon.com/textract/latest/dg/limits-document.html
var SupportedMimeTypes = []string{
	"application/pdf",

	"image/png",
	"image/jpeg",
	"image/tiff",
}
