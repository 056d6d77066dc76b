package tesseract

import (
	"bytes"
	"image"
	"path"
	"slices"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
)

// imageHeight decodes only the image header to find the page height in pixels.
func imageHeight(data []byte) (int, error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))

	if err != nil {
		return 0, err
	}

	return config.Height, nil
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
