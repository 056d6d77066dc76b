package config

import (
	"errors"
	"strings"

	"github.com/imharvol/cienciathon-2021/pkg/otel"
	"github.com/imharvol/cienciathon-2021/pkg/storage"
	"github.com/imharvol/cienciathon-2021/pkg/storage/memory"
	"github.com/imharvol/cienciathon-2021/pkg/storage/s3"
)

type storageConfig struct {
	Type string `yaml:"type"`

	URL    string `yaml:"url"`
	Region string `yaml:"region"`
	Bucket string `yaml:"bucket"`
}

// Storage returns the object buffer for uploads, or nil when files are sent
// to the extractor directly.
func (c *Config) Storage() storage.Provider {
	return c.storage
}

func (c *Config) registerStorage(f *configFile) error {
	if f.Storage == nil {
		return nil
	}

	p, err := createStorage(*f.Storage)

	if err != nil {
		return err
	}

	c.storage = otel.NewStorage(strings.ToLower(f.Storage.Type), p)

	return nil
}

func createStorage(cfg storageConfig) (storage.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "s3":
		return s3Storage(cfg)

	case "memory":
		return memory.New()

	default:
		return nil, errors.New("invalid storage type: " + cfg.Type)
	}
}

func s3Storage(cfg storageConfig) (storage.Provider, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 storage requires a bucket")
	}

	var options []s3.Option

	if cfg.Region != "" {
		options = append(options, s3.WithRegion(cfg.Region))
	}

	if cfg.URL != "" {
		options = append(options, s3.WithURL(cfg.URL))
	}

	return s3.New(cfg.Bucket, options...)
}
