package comprehend

import (
	"context"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/keyword"
	"github.com/imharvol/cienciathon-2021/pkg/text"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
)

var _ keyword.Provider = &Client{}

type Client struct {
	client *comprehend.Client

	url    string
	region string

	language string
	minScore float64
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		language: "en",
		minScore: 0.99,
	}

	for _, option := range options {
		option(c)
	}

	var loadOptions []func(*config.LoadOptions) error

	if c.region != "" {
		loadOptions = append(loadOptions, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), loadOptions...)

	if err != nil {
		return nil, err
	}

	c.client = comprehend.NewFromConfig(cfg, func(o *comprehend.Options) {
		if c.url != "" {
			o.BaseEndpoint = aws.String(c.url)
		}
	})

	return c, nil
}

func (c *Client) Extract(ctx context.Context, input string, options *keyword.ExtractOptions) ([]keyword.Keyword, error) {
	if options == nil {
		options = new(keyword.ExtractOptions)
	}

	input = strings.TrimSpace(input)

	if input == "" {
		return nil, keyword.ErrEmptyText
	}

	splitter := text.NewSplitter()
	splitter.ChunkSize = MaxTextBytes
	splitter.LenFunc = text.ByteLen
	splitter.Normalize = true

	chunks := splitter.Split(input)

	language := options.Language

	if language == "" {
		val, err := c.detectLanguage(ctx, chunks[0])

		if err != nil {
			return nil, err
		}

		language = val
	}

	var lists [][]keyword.Keyword

	for _, chunk := range chunks {
		output, err := c.client.DetectKeyPhrases(ctx, &comprehend.DetectKeyPhrasesInput{
			Text:         aws.String(chunk),
			LanguageCode: types.LanguageCode(language),
		})

		if err != nil {
			return nil, err
		}

		var list []keyword.Keyword

		for _, p := range output.KeyPhrases {
			list = append(list, keyword.Keyword{
				Text:  aws.ToString(p.Text),
				Score: float64(aws.ToFloat32(p.Score)),
			})
		}

		lists = append(lists, list)
	}

	minScore := c.minScore

	if options.MinScore != nil {
		minScore = *options.MinScore
	}

	return keyword.Filter(keyword.Merge(lists...), minScore), nil
}

func (c *Client) detectLanguage(ctx context.Context, input string) (string, error) {
	output, err := c.client.DetectDominantLanguage(ctx, &comprehend.DetectDominantLanguageInput{
		Text: aws.String(input),
	})

	if err != nil {
		return "", err
	}

	var language string
	var score float32

	for _, l := range output.Languages {
		if val := aws.ToFloat32(l.Score); language == "" || val > score {
			language = aws.ToString(l.LanguageCode)
			score = val
		}
	}

	if language == "" {
		language = c.language
	}

	return language, nil
}
