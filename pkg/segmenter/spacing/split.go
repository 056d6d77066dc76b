package spacing

import (
	"math"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
)

// absorbs the rounding error of values like 0.055/0.05 sitting exactly on the boundary
const epsilon = 1e-9

// EqualApprox reports whether the candidate gap a is within the relative
// tolerance of the typical gap b. A zero, negative or non-finite gap never matches.
func EqualApprox(a, b, tolerance float64) bool {
	if b == 0 || a < 0 {
		return false
	}

	if math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0) {
		return false
	}

	return math.Abs(a/b-1) <= tolerance+epsilon
}

// Split groups consecutive lines into paragraphs, starting a new paragraph
// whenever a gap deviates from the typical gap.
func Split(lines []segmenter.Line, typical, tolerance float64) []segmenter.Segment {
	var result []segmenter.Segment

	var buffer strings.Builder
	var count int

	flush := func() {
		text := strings.TrimSpace(buffer.String())

		if text != "" {
			result = append(result, segmenter.Segment{
				Text:  text,
				Lines: count,
			})
		}

		buffer.Reset()
		count = 0
	}

	for i, line := range lines {
		if i > 0 {
			gap := line.Top - lines[i-1].Top

			if !EqualApprox(gap, typical, tolerance) && buffer.Len() > 0 {
				flush()
			}
		}

		buffer.WriteString(line.Text)
		buffer.WriteString(" ")

		if strings.TrimSpace(line.Text) != "" {
			count++
		}
	}

	flush()

	return result
}
