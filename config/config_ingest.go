package config

import (
	"github.com/imharvol/cienciathon-2021/pkg/ingest"
)

type IngestConfig struct {
	Workers int `yaml:"workers"`
	Queue   int `yaml:"queue"`

	Extractor string `yaml:"extractor"`
	Keywords  string `yaml:"keywords"`
}

// ViewsConfig holds the minimum keyword scores shown by the file views.
type ViewsConfig struct {
	ListScore   float64 `yaml:"list_score"`
	DetailScore float64 `yaml:"detail_score"`
}

func (c *Config) registerIngest(f *configFile) error {
	c.Ingest = IngestConfig{
		Workers: 2,
		Queue:   100,
	}

	if f.Ingest != nil {
		if f.Ingest.Workers > 0 {
			c.Ingest.Workers = f.Ingest.Workers
		}

		if f.Ingest.Queue > 0 {
			c.Ingest.Queue = f.Ingest.Queue
		}

		c.Ingest.Extractor = f.Ingest.Extractor
		c.Ingest.Keywords = f.Ingest.Keywords
	}

	c.Views = ViewsConfig{
		ListScore:   0.99997,
		DetailScore: 0.99995,
	}

	if f.Views != nil {
		if f.Views.ListScore > 0 {
			c.Views.ListScore = f.Views.ListScore
		}

		if f.Views.DetailScore > 0 {
			c.Views.DetailScore = f.Views.DetailScore
		}
	}

	return nil
}

// Pipeline wires the configured providers into an ingest pipeline. Keyword
// extraction is skipped when no keyword provider is configured.
func (c *Config) Pipeline() (*ingest.Pipeline, error) {
	e, err := c.Extractor(c.Ingest.Extractor)

	if err != nil {
		return nil, err
	}

	options := []ingest.Option{}

	if c.storage != nil {
		options = append(options, ingest.WithStorage(c.storage))
	}

	if k, err := c.Keyworder(c.Ingest.Keywords); err == nil {
		options = append(options, ingest.WithKeyworder(k))
	} else if c.Ingest.Keywords != "" {
		return nil, err
	}

	return ingest.NewPipeline(c.store, e, c.segmenter, options...)
}
