package keyword

import (
	"context"
	"errors"
	"strings"
)

type Provider interface {
	Extract(ctx context.Context, text string, options *ExtractOptions) ([]Keyword, error)
}

var (
	ErrEmptyText = errors.New("empty text")
)

type ExtractOptions struct {
	// language code; detected when empty
	Language string

	MinScore *float64
}

type Keyword struct {
	Text  string
	Score float64
}

// Merge combines keyword lists, keeping the highest score per phrase.
// Phrases are compared case-insensitively and keep their first spelling and position.
func Merge(lists ...[]Keyword) []Keyword {
	var result []Keyword

	index := make(map[string]int)

	for _, list := range lists {
		for _, k := range list {
			key := strings.ToLower(strings.TrimSpace(k.Text))

			if key == "" {
				continue
			}

			if i, ok := index[key]; ok {
				result[i].Score = max(result[i].Score, k.Score)
				continue
			}

			index[key] = len(result)
			result = append(result, k)
		}
	}

	return result
}

// Filter drops keywords scoring below minScore.
func Filter(keywords []Keyword, minScore float64) []Keyword {
	result := make([]Keyword, 0, len(keywords))

	for _, k := range keywords {
		if k.Score >= minScore {
			result = append(result, k)
		}
	}

	return result
}
