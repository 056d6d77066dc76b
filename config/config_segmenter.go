package config

import (
	"errors"

	"github.com/imharvol/cienciathon-2021/pkg/otel"
	"github.com/imharvol/cienciathon-2021/pkg/segmenter"
	"github.com/imharvol/cienciathon-2021/pkg/segmenter/spacing"
)

type segmenterConfig struct {
	Tolerance *float64 `yaml:"tolerance"`
}

func (c *Config) Segmenter() segmenter.Provider {
	return c.segmenter
}

func (c *Config) registerSegmenter(f *configFile) error {
	var options []spacing.Option

	if f.Segmenter != nil && f.Segmenter.Tolerance != nil {
		if *f.Segmenter.Tolerance < 0 {
			return errors.New("segmenter tolerance must not be negative")
		}

		options = append(options, spacing.WithTolerance(*f.Segmenter.Tolerance))
	}

	p, err := spacing.New(options...)

	if err != nil {
		return err
	}

	c.segmenter = otel.NewSegmenter("spacing", p)

	return nil
}
