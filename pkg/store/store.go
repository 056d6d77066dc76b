package store

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

type Provider interface {
	// Init creates the schema. With force, existing data is dropped first.
	Init(ctx context.Context, force bool) error

	AddFile(ctx context.Context, file File) error
	GetFile(ctx context.Context, hash string) (*File, error)
	ListFiles(ctx context.Context) ([]File, error)

	AddParagraph(ctx context.Context, paragraph Paragraph) error
	GetParagraph(ctx context.Context, hash string) (*Paragraph, error)
	ListParagraphs(ctx context.Context, fileHash string) ([]Paragraph, error)

	AddKeyword(ctx context.Context, keyword Keyword) error

	// FileKeywords returns the keywords of all paragraphs of a file, one entry per
	// keyword with its highest score.
	FileKeywords(ctx context.Context, fileHash string) ([]Keyword, error)
	ParagraphKeywords(ctx context.Context, hash string) ([]Keyword, error)

	Close() error
}

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

type File struct {
	Hash string
	Name string

	Uploaded time.Time
}

type Paragraph struct {
	FileHash string

	Hash     string
	Contents string
	Position int
}

type Keyword struct {
	ParagraphHash string

	Text  string
	Score float64
}

// MergeKeywords keeps one entry per keyword text with its highest score and
// orders the result by descending score.
func MergeKeywords(keywords []Keyword) []Keyword {
	index := make(map[string]int)

	var result []Keyword

	for _, k := range keywords {
		if i, ok := index[k.Text]; ok {
			if k.Score > result[i].Score {
				result[i].Score = k.Score
			}

			continue
		}

		index[k.Text] = len(result)
		result = append(result, Keyword{Text: k.Text, Score: k.Score})
	}

	SortKeywords(result)

	return result
}

func SortKeywords(keywords []Keyword) {
	slices.SortStableFunc(keywords, func(a, b Keyword) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return strings.Compare(a.Text, b.Text)
	})
}

// FilterKeywords drops keywords scoring below minScore.
func FilterKeywords(keywords []Keyword, minScore float64) []Keyword {
	result := make([]Keyword, 0, len(keywords))

	for _, k := range keywords {
		if k.Score >= minScore {
			result = append(result, k)
		}
	}

	return result
}
