package azure

import (
	"net/http"
	"time"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.interval = interval
	}
}

// https://learn.microsoft.com/en-us/azure/ai-services/document-intelligence/prebuilt/read#input-requirements
var SupportedExtensions = []string{
	".pdf",

	".jpeg", ".jpg",
	".png",
	".bmp",
	".tiff", ".tif",
	".heif",
}

var SupportedMimeTypes = []string{
	"application/pdf",

	"image/jpeg",
	"image/png",
	"image/bmp",
	"image/tiff",
	"image/heif",
}
