package comprehend

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

// WithLanguage sets the language used when detection finds nothing.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

func WithMinScore(score float64) Option {
	return func(c *Client) {
		c.minScore = score
	}
}

// https://docs.aws.amazon.com/comprehend/latest/dg/guidelines-and-limits.html
const MaxTextBytes = 5000
