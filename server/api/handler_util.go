package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
)

const maxUploadSize = 64 << 20

var errNoFiles = errors.New("No files were uploaded on the request")

func valueExtractor(r *http.Request) string {
	if val := r.FormValue("extractor"); val != "" {
		return val
	}

	return ""
}

// readFiles returns the files of a multipart request, or the request body as a
// single file named by its Content-Disposition header.
func readFiles(w http.ResponseWriter, r *http.Request) ([]extractor.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		return readMultipart(r)
	}

	file, err := readBody(r)

	if err != nil {
		return nil, err
	}

	if len(file.Content) == 0 {
		return nil, errNoFiles
	}

	return []extractor.File{*file}, nil
}

func readMultipart(r *http.Request) ([]extractor.File, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}

	var fields []string

	for field := range r.MultipartForm.File {
		fields = append(fields, field)
	}

	slices.Sort(fields)

	var result []extractor.File

	for _, field := range fields {
		for _, header := range r.MultipartForm.File[field] {
			f, err := header.Open()

			if err != nil {
				return nil, err
			}

			data, err := io.ReadAll(f)
			f.Close()

			if err != nil {
				return nil, err
			}

			result = append(result, extractor.File{
				Name: header.Filename,

				Content:     data,
				ContentType: detectContentType(header.Header.Get("Content-Type"), data),
			})
		}
	}

	if len(result) == 0 {
		return nil, errNoFiles
	}

	return result, nil
}

func readBody(r *http.Request) (*extractor.File, error) {
	contentDisposition := r.Header.Get("Content-Disposition")

	_, params, _ := mime.ParseMediaType(contentDisposition)

	filename := params["filename*"]
	filename = strings.TrimPrefix(filename, "UTF-8''")
	filename = strings.TrimPrefix(filename, "utf-8''")

	if filename == "" {
		filename = params["filename"]
	}

	data, err := io.ReadAll(r.Body)

	if err != nil {
		return nil, err
	}

	return &extractor.File{
		Name: filename,

		Content:     data,
		ContentType: detectContentType(r.Header.Get("Content-Type"), data),
	}, nil
}

// detectContentType normalizes a declared content type and sniffs the data
// when the client did not send a specific one.
func detectContentType(declared string, data []byte) string {
	mediaType, _, err := mime.ParseMediaType(declared)

	if err == nil && mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}

	mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(data))

	return mediaType
}

func isSupported(contentType string) bool {
	return slices.Contains(extractor.SupportedMimeTypes, contentType)
}
