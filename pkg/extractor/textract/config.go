package textract

import (
	"time"
)

type Option func(*Client)

func WithRegion(region string) Option {
	return func(c *Client) {
		c.region = region
	}
}

func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithPollInterval sets how often an asynchronous detection job is polled.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.interval = interval
	}
}

// https://docs.aws.amazon.com/textract/latest/dg/limits-document.html
var SupportedExtensions = []string{
	".pdf",

	".png",
	".jpeg", ".jpg",
	".tiff", ".tif",
}

var SupportedMimeTypes = []string{
	"application/pdf",

	"image/png",
	"image/jpeg",
	"image/tiff",
}
