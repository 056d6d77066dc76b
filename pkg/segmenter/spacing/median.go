package spacing

import (
	"slices"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
)

// Gaps returns the signed vertical distance between each line and the one before it.
func Gaps(lines []segmenter.Line) []float64 {
	if len(lines) < 2 {
		return nil
	}

	gaps := make([]float64, 0, len(lines)-1)

	for i := 1; i < len(lines); i++ {
		gaps = append(gaps, lines[i].Top-lines[i-1].Top)
	}

	return gaps
}

// Median returns the classic median of values. The input slice is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, segmenter.ErrNoInput
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	half := len(sorted) / 2

	if len(sorted)%2 == 1 {
		return sorted[half], nil
	}

	return (sorted[half-1] + sorted[half]) / 2, nil
}

// TypicalGap estimates the usual line spacing of a page as the median gap.
func TypicalGap(lines []segmenter.Line) (float64, error) {
	return Median(Gaps(lines))
}
