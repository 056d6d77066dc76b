package main

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/imharvol/cienciathon-2021/pkg/extractor"
	"github.com/imharvol/cienciathon-2021/pkg/store"

	"github.com/spf13/cobra"
)

func newIngestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Process files synchronously and print their paragraphs",
		Args:  cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd)

			if err != nil {
				return err
			}

			defer cfg.Close()

			if err := cfg.Store().Init(ctx, false); err != nil {
				return err
			}

			pipeline, err := cfg.Pipeline()

			if err != nil {
				return err
			}

			var errs []error

			for _, path := range args {
				file, err := readFile(path)

				if err != nil {
					errs = append(errs, err)
					continue
				}

				result, err := pipeline.Process(ctx, *file)

				if errors.Is(err, store.ErrExists) {
					fmt.Fprintf(out, "%s: already processed\n", path)
					continue
				}

				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}

				fmt.Fprintf(out, "%s (%s)\n\n", path, result.File.Hash)

				for _, p := range result.Paragraphs {
					fmt.Fprintf(out, "[%d] %s\n\n", p.Position, p.Contents)
				}
			}

			return errors.Join(errs...)
		},
	}

	return cmd
}

func readFile(path string) (*extractor.File, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))

	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	} else {
		contentType, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}

	return &extractor.File{
		Name: filepath.Base(path),

		Content:     data,
		ContentType: contentType,
	}, nil
}
