package s3

type Option func(*Client)

func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

// WithURL points the client at an S3 compatible endpoint (MinIO, LocalStack).
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}
