package segmenter

import (
	"context"
	"errors"
)

const DefaultTolerance = 0.1

type Provider interface {
	Segment(ctx context.Context, lines []Line, options *SegmentOptions) ([]Segment, error)
}

var (
	ErrNoInput = errors.New("no input")
)

type SegmentOptions struct {
	// relative tolerance for two line gaps to count as equal
	Tolerance *float64
}

// Line is a single recognized text line. Top is the top edge of the line's
// bounding box, normalized to the page height.
type Line struct {
	Text string
	Top  float64
}

type Segment struct {
	Text string

	Lines int
}
