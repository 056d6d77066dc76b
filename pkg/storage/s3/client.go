package s3

import (
	"bytes"
	"context"
	"errors"

	"github.com/imharvol/cienciathon-2021/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ storage.Provider = &Client{}

type Client struct {
	client *s3.Client

	bucket string

	url    string
	region string
}

func New(bucket string, options ...Option) (*Client, error) {
	if bucket == "" {
		return nil, errors.New("invalid bucket")
	}

	c := &Client{
		bucket: bucket,
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

	c.client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.url != "" {
			o.BaseEndpoint = aws.String(c.url)
			o.UsePathStyle = true
		}
	})

	return c, nil
}

func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) (*storage.Object, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),

		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}

	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := c.client.PutObject(ctx, input); err != nil {
		return nil, err
	}

	return &storage.Object{
		Bucket: c.bucket,
		Key:    key,
	}, nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})

	return err
}
