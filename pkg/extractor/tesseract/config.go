package tesseract

type Option func(*Client)

// WithLanguages sets the recognition languages, e.g. "eng", "spa".
func WithLanguages(languages ...string) Option {
	return func(c *Client) {
		c.languages = languages
	}
}

var SupportedExtensions = []string{
	".png",
	".jpeg", ".jpg",
	".tiff", ".tif",
	".bmp",
}

var SupportedMimeTypes = []string{
	"image/png",
	"image/jpeg",
	"image/tiff",
	"image/bmp",
}
