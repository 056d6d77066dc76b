package spacing

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"

	"github.com/stretchr/testify/require"
)

func makeLines(tops ...float64) []segmenter.Line {
	lines := make([]segmenter.Line, 0, len(tops))

	for i, top := range tops {
		lines = append(lines, segmenter.Line{
			Text: fmt.Sprintf("L%d", i+1),
			Top:  top,
		})
	}

	return lines
}

func texts(segments []segmenter.Segment) []string {
	result := make([]string, 0, len(segments))

	for _, s := range segments {
		result = append(result, s.Text)
	}

	return result
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"single", []float64{0.4}, 0.4},
		{"odd", []float64{0.02, 0.10, 0.03}, 0.03},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"outlier", []float64{0.05, 0.05, 0.20, 0.05}, 0.05},
		{"negative", []float64{-0.03, 0.05, 0.05}, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.values)

			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestMedianDoesNotModifyInput(t *testing.T) {
	values := []float64{0.3, 0.1, 0.2}

	_, err := Median(values)
	require.NoError(t, err)

	require.Equal(t, []float64{0.3, 0.1, 0.2}, values)
}

func TestMedianEmpty(t *testing.T) {
	_, err := Median(nil)
	require.ErrorIs(t, err, segmenter.ErrNoInput)

	_, err = TypicalGap(makeLines(0.1))
	require.ErrorIs(t, err, segmenter.ErrNoInput)
}

func TestGaps(t *testing.T) {
	gaps := Gaps(makeLines(0.0, 0.25, 0.5))

	require.Len(t, gaps, 2)
	require.InDelta(t, 0.25, gaps[0], 1e-12)
	require.InDelta(t, 0.25, gaps[1], 1e-12)

	require.Empty(t, Gaps(makeLines(0.3)))
}

func TestEqualApprox(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want bool
	}{
		{"identical", 0.05, 0.05, true},
		{"boundary", 0.055, 0.05, true},
		{"lower boundary", 0.045, 0.05, true},
		{"just above boundary", 0.0551, 0.05, false},
		{"paragraph gap", 0.20, 0.05, false},
		{"zero typical", 0.05, 0, false},
		{"zero both", 0, 0, false},
		{"negative gap", -0.05, 0.05, false},
		{"nan gap", math.NaN(), 0.05, false},
		{"infinite gap", math.Inf(1), 0.05, false},
		{"nan typical", 0.05, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EqualApprox(tt.a, tt.b, segmenter.DefaultTolerance))
		})
	}
}

func TestSegmentSingleParagraph(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	result, err := p.Segment(context.Background(), makeLines(0.00, 0.05, 0.10, 0.15, 0.20), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"L1 L2 L3 L4 L5"}, texts(result))
	require.Equal(t, 5, result[0].Lines)
}

func TestSegmentMultipleParagraphs(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	result, err := p.Segment(context.Background(), makeLines(0.00, 0.05, 0.10, 0.30, 0.35), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"L1 L2 L3", "L4 L5"}, texts(result))
	require.Equal(t, 3, result[0].Lines)
	require.Equal(t, 2, result[1].Lines)
}

func TestSegmentFirstLineIncluded(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	result, err := p.Segment(context.Background(), makeLines(0.00, 0.20, 0.25, 0.30), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"L1", "L2 L3 L4"}, texts(result))
}

func TestSegmentOneLine(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	result, err := p.Segment(context.Background(), []segmenter.Line{{Text: " L1 ", Top: 0}}, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"L1"}, texts(result))
}

func TestSegmentEmpty(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	_, err = p.Segment(context.Background(), nil, nil)
	require.ErrorIs(t, err, segmenter.ErrNoInput)
}

func TestSegmentZeroMedian(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	result, err := p.Segment(context.Background(), makeLines(0.4, 0.4, 0.4, 0.4), nil)
	require.NoError(t, err)

	require.Equal(t, []string{"L1", "L2", "L3", "L4"}, texts(result))
}

func TestSegmentMalformedGaps(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	t.Run("negative gap breaks", func(t *testing.T) {
		result, err := p.Segment(context.Background(), makeLines(0.00, 0.05, 0.02, 0.07), nil)
		require.NoError(t, err)

		require.Equal(t, []string{"L1 L2", "L3 L4"}, texts(result))
	})

	t.Run("nan position keeps every line", func(t *testing.T) {
		result, err := p.Segment(context.Background(), makeLines(0.00, 0.05, math.NaN(), 0.15), nil)
		require.NoError(t, err)

		require.Equal(t, "L1 L2 L3 L4", strings.Join(texts(result), " "))
	})
}

func TestSegmentTolerance(t *testing.T) {
	lines := makeLines(0.00, 0.05, 0.10, 0.30, 0.35)

	t.Run("option", func(t *testing.T) {
		p, err := New()
		require.NoError(t, err)

		tolerance := 5.0

		result, err := p.Segment(context.Background(), lines, &segmenter.SegmentOptions{
			Tolerance: &tolerance,
		})
		require.NoError(t, err)

		require.Equal(t, []string{"L1 L2 L3 L4 L5"}, texts(result))
	})

	t.Run("provider default", func(t *testing.T) {
		p, err := New(WithTolerance(5.0))
		require.NoError(t, err)

		result, err := p.Segment(context.Background(), lines, &segmenter.SegmentOptions{})
		require.NoError(t, err)

		require.Len(t, result, 1)
	})
}

func TestSegmentSkipsBlankParagraphs(t *testing.T) {
	lines := []segmenter.Line{
		{Text: "A", Top: 0.00},
		{Text: "B", Top: 0.05},
		{Text: "  ", Top: 0.30},
		{Text: "C", Top: 0.60},
		{Text: "D", Top: 0.65},
	}

	result := Split(lines, 0.05, segmenter.DefaultTolerance)

	require.Equal(t, []string{"A B", "C D"}, texts(result))
}

func TestSegmentLineCountIgnoresBlankLines(t *testing.T) {
	lines := []segmenter.Line{
		{Text: "A", Top: 0.00},
		{Text: " ", Top: 0.05},
		{Text: "B", Top: 0.10},
		{Text: "C", Top: 0.40},
	}

	result := Split(lines, 0.05, segmenter.DefaultTolerance)

	require.Equal(t, []segmenter.Segment{
		{Text: "A   B", Lines: 2},
		{Text: "C", Lines: 1},
	}, result)
}

func TestSegmentCompleteness(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	p, err := New()
	require.NoError(t, err)

	for run := 0; run < 50; run++ {
		count := 1 + rng.IntN(40)

		lines := make([]segmenter.Line, 0, count)
		expected := make([]string, 0, count)

		top := 0.0

		for i := 0; i < count; i++ {
			switch rng.IntN(4) {
			case 0:
				top += 0.08
			default:
				top += 0.02
			}

			text := fmt.Sprintf("w%d-%d", run, i)

			lines = append(lines, segmenter.Line{Text: text, Top: top})
			expected = append(expected, text)
		}

		result, err := p.Segment(context.Background(), lines, nil)
		require.NoError(t, err)

		var words []string

		for _, s := range result {
			require.NotEmpty(t, s.Text)
			words = append(words, strings.Fields(s.Text)...)
		}

		require.Equal(t, expected, words)
	}
}
