package spacing

import (
	"context"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
)

var _ segmenter.Provider = &Provider{}

// Provider segments a page of recognized lines into paragraphs based on the
// median line spacing.
type Provider struct {
	tolerance float64
}

type Option func(*Provider)

func WithTolerance(tolerance float64) Option {
	return func(p *Provider) {
		p.tolerance = tolerance
	}
}

func New(options ...Option) (*Provider, error) {
	p := &Provider{
		tolerance: segmenter.DefaultTolerance,
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

func (p *Provider) Segment(ctx context.Context, lines []segmenter.Line, options *segmenter.SegmentOptions) ([]segmenter.Segment, error) {
	if options == nil {
		options = new(segmenter.SegmentOptions)
	}

	tolerance := p.tolerance

	if options.Tolerance != nil {
		tolerance = *options.Tolerance
	}

	if len(lines) == 0 {
		return nil, segmenter.ErrNoInput
	}

	if len(lines) == 1 {
		text := strings.TrimSpace(lines[0].Text)

		if text == "" {
			return []segmenter.Segment{}, nil
		}

		return []segmenter.Segment{{Text: text, Lines: 1}}, nil
	}

	typical, err := TypicalGap(lines)

	if err != nil {
		return nil, err
	}

	return Split(lines, typical, tolerance), nil
}
