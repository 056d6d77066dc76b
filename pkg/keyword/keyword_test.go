package keyword

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	result := Merge(
		[]Keyword{{Text: "Cienciathon", Score: 0.9}, {Text: "bases", Score: 0.99}},
		[]Keyword{{Text: "cienciathon ", Score: 0.999}, {Text: "", Score: 1}, {Text: "premio", Score: 0.5}},
	)

	require.Equal(t, []Keyword{
		{Text: "Cienciathon", Score: 0.999},
		{Text: "bases", Score: 0.99},
		{Text: "premio", Score: 0.5},
	}, result)
}

func TestFilter(t *testing.T) {
	keywords := []Keyword{
		{Text: "a", Score: 0.99},
		{Text: "b", Score: 0.98},
		{Text: "c", Score: 0.999},
	}

	require.Equal(t, []Keyword{{Text: "a", Score: 0.99}, {Text: "c", Score: 0.999}}, Filter(keywords, 0.99))
	require.Empty(t, Filter(keywords, 1))
}
