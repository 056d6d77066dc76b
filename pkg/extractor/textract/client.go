package textract

import (
	"context"
	"errors"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
)

var _ extractor.Provider = &Client{}

type Client struct {
	client *textract.Client

	url    string
	region string

	interval time.Duration
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		interval: 2 * time.Second,
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

	c.client = textract.NewFromConfig(cfg, func(o *textract.Options) {
		if c.url != "" {
			o.BaseEndpoint = aws.String(c.url)
		}
	})

	return c, nil
}

func (c *Client) Extract(ctx context.Context, file extractor.File, options *extractor.ExtractOptions) (*extractor.Document, error) {
	if options == nil {
		options = new(extractor.ExtractOptions)
	}

	if !isSupported(file) {
		return nil, extractor.ErrUnsupported
	}

	// multi-page documents are only supported by the asynchronous API, which reads from S3
	if options.Object != nil && isPDF(file) {
		return c.detectAsync(ctx, options.Object.Bucket, options.Object.Key)
	}

	input := &textract.DetectDocumentTextInput{
		Document: &types.Document{},
	}

	if options.Object != nil {
		input.Document.S3Object = &types.S3Object{
			Bucket: aws.String(options.Object.Bucket),
			Name:   aws.String(options.Object.Key),
		}
	} else {
		input.Document.Bytes = file.Content
	}

	output, err := c.client.DetectDocumentText(ctx, input)

	if err != nil {
		return nil, err
	}

	return convertBlocks(output.Blocks), nil
}

func (c *Client) detectAsync(ctx context.Context, bucket, key string) (*extractor.Document, error) {
	job, err := c.client.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: &types.DocumentLocation{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	})

	if err != nil {
		return nil, err
	}

	var blocks []types.Block
	var token *string

	for {
		output, err := c.client.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
			JobId:     job.JobId,
			NextToken: token,
		})

		if err != nil {
			return nil, err
		}

		switch output.JobStatus {
		case types.JobStatusInProgress:
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.interval):
			}

			continue

		case types.JobStatusSucceeded, types.JobStatusPartialSuccess:
			blocks = append(blocks, output.Blocks...)

		default:
			return nil, errors.New("text detection " + strings.ToLower(string(output.JobStatus)) + ": " + aws.ToString(output.StatusMessage))
		}

		if output.NextToken == nil {
			break
		}

		token = output.NextToken
	}

	return convertBlocks(blocks), nil
}

func convertBlocks(blocks []types.Block) *extractor.Document {
	result := &extractor.Document{
		Pages: []extractor.Page{},
		Lines: []extractor.Line{},
	}

	for _, b := range blocks {
		page := int(aws.ToInt32(b.Page))

		if page == 0 {
			page = 1
		}

		switch b.BlockType {
		case types.BlockTypePage:
			result.Pages = append(result.Pages, extractor.Page{
				Page: page,

				Unit:   "normalized",
				Width:  1,
				Height: 1,
			})

		case types.BlockTypeLine:
			line := extractor.Line{
				Page: page,
				Text: aws.ToString(b.Text),

				Score: float64(aws.ToFloat32(b.Confidence)) / 100,
			}

			if b.Geometry != nil && b.Geometry.BoundingBox != nil {
				line.Top = float64(b.Geometry.BoundingBox.Top)
			}

			result.Lines = append(result.Lines, line)
		}
	}

	return result
}

func isPDF(file extractor.File) bool {
	return file.ContentType == "application/pdf" || strings.EqualFold(path.Ext(file.Name), ".pdf")
}

func isSupported(file extractor.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}
