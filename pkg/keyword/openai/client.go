package openai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/keyword"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/openai/openai-go/v3"
)

var _ keyword.Provider = &Client{}

type Client struct {
	*Config
	completions openai.ChatCompletionService
}

type result struct {
	Keyphrases []keyphrase `json:"keyphrases"`
}

type keyphrase struct {
	Text  string  `json:"text" jsonschema:"the key phrase exactly as it appears in the text"`
	Score float64 `json:"score" jsonschema:"confidence between 0 and 1"`
}

const instructions = `Extract the key phrases of the text given by the user.
Key phrases are noun phrases that describe what the text is about.
Return every key phrase exactly as written in the text, in the language of the text, together with a confidence score between 0 and 1.`

func New(url, model string, options ...Option) (*Client, error) {
	cfg := &Config{
		url:   url,
		model: model,

		minScore: 0.99,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Client{
		Config:      cfg,
		completions: openai.NewChatCompletionService(cfg.Options()...),
	}, nil
}

func (c *Client) Extract(ctx context.Context, text string, options *keyword.ExtractOptions) ([]keyword.Keyword, error) {
	if options == nil {
		options = new(keyword.ExtractOptions)
	}

	text = strings.TrimSpace(text)

	if text == "" {
		return nil, keyword.ErrEmptyText
	}

	schema, err := resultSchema()

	if err != nil {
		return nil, err
	}

	prompt := instructions

	if options.Language != "" {
		prompt += "\nThe text is written in the language with code " + options.Language + "."
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,

		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt),
			openai.UserMessage(text),
		},

		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "keyphrases",
					Schema: schema,
				},
			},
		},
	}

	completion, err := c.completions.New(ctx, req)

	if err != nil {
		return nil, err
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no completion choice")
	}

	var r result

	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &r); err != nil {
		return nil, err
	}

	var keywords []keyword.Keyword

	for _, k := range r.Keyphrases {
		keywords = append(keywords, keyword.Keyword{
			Text:  strings.TrimSpace(k.Text),
			Score: k.Score,
		})
	}

	minScore := c.minScore

	if options.MinScore != nil {
		minScore = *options.MinScore
	}

	return keyword.Filter(keyword.Merge(keywords), minScore), nil
}

func resultSchema() (map[string]any, error) {
	schema, err := jsonschema.For[result](nil)

	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(schema)

	if err != nil {
		return nil, err
	}

	var m map[string]any

	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return m, nil
}
