package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
	"github.com/imharvol/cienciathon-2021/pkg/segmenter/spacing"

	"github.com/spf13/cobra"
)

func newSegmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment [file]",
		Short: "Split recognized lines into paragraphs",
		Long: `Split recognized lines into paragraphs by their vertical spacing.

The input holds one JSON object per line, {"text": "...", "top": 0.12}, with
top normalized to the page height. It is read from the file or from stdin.`,
		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			tolerance, _ := cmd.Flags().GetFloat64("tolerance")

			input := cmd.InOrStdin()

			if len(args) == 1 {
				f, err := os.Open(args[0])

				if err != nil {
					return err
				}

				defer f.Close()

				input = f
			}

			lines, err := readLines(input)

			if err != nil {
				return err
			}

			p, err := spacing.New(spacing.WithTolerance(tolerance))

			if err != nil {
				return err
			}

			segments, err := p.Segment(cmd.Context(), lines, nil)

			if err != nil {
				return err
			}

			for i, s := range segments {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}

				fmt.Fprintln(cmd.OutOrStdout(), s.Text)
			}

			return nil
		},
	}

	cmd.Flags().Float64P("tolerance", "t", segmenter.DefaultTolerance, "relative tolerance for equal line gaps")

	return cmd
}

func readLines(r io.Reader) ([]segmenter.Line, error) {
	var result []segmenter.Line

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())

		if text == "" {
			continue
		}

		var line struct {
			Text string  `json:"text"`
			Top  float64 `json:"top"`
		}

		if err := json.Unmarshal([]byte(text), &line); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}

		result = append(result, segmenter.Line{
			Text: line.Text,
			Top:  line.Top,
		})
	}

	return result, scanner.Err()
}
